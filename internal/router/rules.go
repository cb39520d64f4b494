// internal/router/rules.go
package router

// DefaultRules is the assistant's built-in routing table. Order matters only
// for tie-breaking; priority and trigger length decide first.
func DefaultRules() []Rule {
	return []Rule{
		{
			Capability: "weather",
			Triggers:   []string{"weather", "temperature", "forecast", "raining", "sunny"},
			Priority:   10,
			Confidence: 0.9,
			Extract:    extractWeatherParams,
		},
		{
			Capability: "calendar",
			Triggers:   []string{"schedule", "book a meeting", "add event", "appointment"},
			Priority:   10,
			Confidence: 0.9,
			Extract:    extractScheduleParams,
		},
		{
			Capability: "calendar",
			Triggers:   []string{"remind me", "reminder"},
			Priority:   10,
			Confidence: 0.9,
			Extract:    extractReminderParams,
		},
		{
			Capability: "calendar",
			Triggers:   []string{"my events", "my calendar", "what's on", "agenda", "search events", "find events"},
			Priority:   10,
			Confidence: 0.85,
			Extract:    extractListParams,
		},
		{
			Capability: "email",
			Triggers:   []string{"send email", "compose email", "email"},
			Priority:   10,
			Confidence: 0.9,
			Extract:    extractEmailParams,
		},
		{
			Capability: "social",
			Triggers:   []string{"post", "tweet", "share on social"},
			Priority:   5,
			Confidence: 0.8,
			Extract:    extractSocialParams,
		},
		{
			Capability: "conversational",
			Triggers:   []string{"hello", "hi there", "thanks", "thank you", "help", "what can you do"},
			Priority:   1,
			Confidence: 0.7,
			Extract: func(text string) map[string]interface{} {
				return map[string]interface{}{"text": text}
			},
		},
	}
}
