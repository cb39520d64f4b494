// internal/models/intent.go
package models

// Intent is the router's interpretation of free text: a capability name plus
// the parameters extracted from the text. Created per request and consumed by
// the router's caller.
type Intent struct {
	Capability string                 `json:"capability"`
	Params     map[string]interface{} `json:"params"`
	Confidence float64                `json:"confidence"`
}

// FallbackCapability is the capability every unmatched input routes to.
const FallbackCapability = "conversational"

// Fallback returns the zero-confidence intent used when no trigger rule
// matches. Every input produces some capability invocation.
func Fallback(text string) Intent {
	return Intent{
		Capability: FallbackCapability,
		Params:     map[string]interface{}{"message": text},
		Confidence: 0,
	}
}
