// internal/evaluator/social.go
package evaluator

import (
	"context"
	"time"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/models"
)

const socialCapTimeout = 5 * time.Second

// SocialEvaluator scores whether the social channel is ready to carry a
// follow-up announcement. An unconfigured channel is neutral, not a failure.
type SocialEvaluator struct {
	invoker *capability.Invoker
	social  capability.Capability
}

func NewSocialEvaluator(invoker *capability.Invoker, social capability.Capability) *SocialEvaluator {
	return &SocialEvaluator{invoker: invoker, social: social}
}

func (e *SocialEvaluator) Name() string { return "social" }

func (e *SocialEvaluator) Assess(ctx context.Context, req Request) models.Assessment {
	result := e.invoker.Invoke(ctx, e.social, capability.Params{"action": "status"}, socialCapTimeout)
	if !result.Success {
		a := models.NeutralAssessment(e.Name())
		a.Findings = []string{"social channel status unavailable"}
		return a
	}

	configured, _ := result.Data["configured"].(bool)
	if !configured {
		return models.Assessment{
			Source:    e.Name(),
			Score:     0.5,
			Findings:  []string{"social channel not configured, announcements will be previewed only"},
			Synthetic: true,
		}
	}

	return models.Assessment{
		Source:   e.Name(),
		Score:    1.0,
		Findings: []string{"social channel ready"},
	}
}
