// internal/evaluator/weather.go
package evaluator

import (
	"context"
	"fmt"
	"time"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/models"
)

const (
	comfortLow        = 15.0
	comfortHigh       = 28.0
	precipPenalty     = 0.4
	perDegreePenalty  = 0.05
	weatherCapTimeout = 8 * time.Second
)

// WeatherEvaluator scores how suitable the forecast is for an outdoor
// commitment in the request window. It consults the weather capability and
// reduces the report to a single suitability score.
type WeatherEvaluator struct {
	invoker *capability.Invoker
	weather capability.Capability
}

func NewWeatherEvaluator(invoker *capability.Invoker, weather capability.Capability) *WeatherEvaluator {
	return &WeatherEvaluator{invoker: invoker, weather: weather}
}

func (e *WeatherEvaluator) Name() string { return "weather" }

func (e *WeatherEvaluator) Assess(ctx context.Context, req Request) models.Assessment {
	result := e.invoker.Invoke(ctx, e.weather, capability.Params{"city": req.City}, weatherCapTimeout)
	if !result.Success {
		a := models.NeutralAssessment(e.Name())
		a.Findings = []string{fmt.Sprintf("weather lookup failed: %s", result.Message)}
		a.Window = req.Window
		a.Location = req.City
		return a
	}

	report, ok := result.Data["report"].(models.WeatherReport)
	if !ok {
		a := models.NeutralAssessment(e.Name())
		a.Findings = []string{"weather capability returned no report"}
		a.Window = req.Window
		a.Location = req.City
		return a
	}

	score, findings := ScoreWeather(report)
	return models.Assessment{
		Source:   e.Name(),
		Score:    score,
		Findings: findings,
		Raw: map[string]interface{}{
			"temperature":   report.Temperature,
			"condition":     report.Condition,
			"precipitation": report.Precipitation,
		},
		Synthetic: result.Synthetic || report.Synthetic,
		Window:    req.Window,
		Location:  req.City,
	}
}

// ScoreWeather reduces a report to outdoor suitability in [0,1]. Start at
// 1.0, subtract 0.4 for precipitation and 0.05 per degree Celsius outside
// the 15..28 comfort band, then clamp.
func ScoreWeather(r models.WeatherReport) (float64, []string) {
	score := 1.0
	var findings []string

	if r.Precipitation {
		score -= precipPenalty
		findings = append(findings, fmt.Sprintf("precipitation expected (%s), bring an umbrella", r.Condition))
	}

	switch {
	case r.Temperature < comfortLow:
		delta := comfortLow - r.Temperature
		score -= delta * perDegreePenalty
		findings = append(findings, fmt.Sprintf("%.0f°C is below the comfort range, dress in layers", r.Temperature))
	case r.Temperature > comfortHigh:
		delta := r.Temperature - comfortHigh
		score -= delta * perDegreePenalty
		findings = append(findings, fmt.Sprintf("%.0f°C is above the comfort range, stay hydrated", r.Temperature))
	}

	if len(findings) == 0 {
		findings = append(findings, fmt.Sprintf("%.0f°C and %s, good conditions", r.Temperature, r.Condition))
	}

	return clampScore(score), findings
}
