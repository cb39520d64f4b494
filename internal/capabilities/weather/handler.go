// Package weather exposes current conditions for a city, with a Redis cache
// in front of the live provider and a deterministic synthetic fallback when
// no provider is configured.
package weather

import (
	"context"
	"fmt"
	"time"

	"assistant-agents/internal/capability"
	commonerrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
	"assistant-agents/internal/models"
)

type Handler struct {
	service *Service
	config  *Config
	logger  logger.Logger
}

func NewHandler(deps ServiceDependencies, config *Config) *Handler {
	return &Handler{
		service: NewService(deps, config),
		config:  config,
		logger:  deps.Logger,
	}
}

func (h *Handler) Name() string { return "weather" }

func (h *Handler) Description() string {
	return "Current weather conditions for a city"
}

func (h *Handler) Schema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"city": {
				Type:        "string",
				Description: "City to look up",
				Default:     h.config.DefaultCity,
			},
		},
	}
}

func (h *Handler) Execute(ctx context.Context, params capability.Params) capability.Result {
	city := params.String("city", h.config.DefaultCity)

	report, err := h.service.GetWeather(ctx, city)
	if err != nil {
		if commonerrors.IsKind(err, commonerrors.KindProviderUnavailable) {
			report = SyntheticReport(city, time.Now().UTC())
			h.logger.Info("serving synthetic weather report", map[string]interface{}{
				"city":   city,
				"reason": err.Error(),
			})
			return capability.Degraded(describe(report), reportData(report))
		}
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(describe(report), reportData(report))
}

func describe(r models.WeatherReport) string {
	return fmt.Sprintf("%s: %.0f°C, %s", r.City, r.Temperature, r.Condition)
}

func reportData(r models.WeatherReport) map[string]interface{} {
	return map[string]interface{}{
		"report":        r,
		"city":          r.City,
		"temperature":   r.Temperature,
		"condition":     r.Condition,
		"precipitation": r.Precipitation,
	}
}
