// internal/router/router.go

// Package router maps free-text input to a capability name plus extracted
// parameters, using an ordered declarative rule table.
package router

import (
	"strings"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
)

// Rule maps trigger phrases to a capability. Matching is case-insensitive
// substring presence. Higher Priority wins; ties go to the longest matching
// trigger phrase, then to the earliest-declared rule.
type Rule struct {
	Capability string
	Triggers   []string
	Priority   int
	Confidence float64
	// Extract pulls capability parameters out of the raw text. May return
	// nil when the text carries none; the capability's schema defaults
	// fill the gaps.
	Extract func(text string) map[string]interface{}
}

// Router resolves free text to intents. Rules are fixed at construction;
// Route is safe for concurrent use.
type Router struct {
	rules  []Rule
	logger logger.Logger
}

func New(rules []Rule, log logger.Logger) *Router {
	return &Router{rules: rules, logger: log}
}

// Route matches text against the rule table. It never fails: unmatched input
// resolves to the fallback conversational intent with confidence 0.
func (r *Router) Route(text string, conv *models.Conversation) models.Intent {
	lowered := strings.ToLower(text)

	bestIdx := -1
	bestTrigger := ""
	for i, rule := range r.rules {
		trigger, ok := longestMatch(lowered, rule.Triggers)
		if !ok {
			continue
		}
		if bestIdx == -1 || betterMatch(rule, trigger, r.rules[bestIdx], bestTrigger) {
			bestIdx = i
			bestTrigger = trigger
		}
	}

	if bestIdx == -1 {
		r.logger.Debug("no trigger matched, using fallback intent", map[string]interface{}{
			"text": text,
		})
		return models.Fallback(text)
	}

	rule := r.rules[bestIdx]
	params := map[string]interface{}{}
	if rule.Extract != nil {
		if extracted := rule.Extract(text); extracted != nil {
			params = extracted
		}
	}

	// Inherit the city from earlier turns when this one names none.
	if rule.Capability == "weather" {
		if _, ok := params["city"]; !ok && conv != nil {
			if city := conv.LastCity(); city != "" {
				params["city"] = city
			}
		}
	}

	confidence := rule.Confidence
	if confidence <= 0 {
		confidence = 0.8
	}

	r.logger.Debug("routed intent", map[string]interface{}{
		"capability": rule.Capability,
		"trigger":    bestTrigger,
		"confidence": confidence,
	})

	return models.Intent{
		Capability: rule.Capability,
		Params:     params,
		Confidence: confidence,
	}
}

// longestMatch returns the longest trigger phrase present in the text.
func longestMatch(lowered string, triggers []string) (string, bool) {
	best := ""
	for _, trigger := range triggers {
		if strings.Contains(lowered, strings.ToLower(trigger)) && len(trigger) > len(best) {
			best = trigger
		}
	}
	return best, best != ""
}

// betterMatch reports whether candidate beats the current best: priority
// first, then more specific (longer) trigger phrase. Declaration order breaks
// remaining ties, so equal candidates never displace an earlier rule.
func betterMatch(candidate Rule, candidateTrigger string, best Rule, bestTrigger string) bool {
	if candidate.Priority != best.Priority {
		return candidate.Priority > best.Priority
	}
	return len(candidateTrigger) > len(bestTrigger)
}
