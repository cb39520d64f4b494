// internal/models/conversation.go
package models

// Conversation is the explicitly passed per-session context: prior intents
// and decisions, read-only for router and fuser. Its lifecycle is owned by
// the caller of one request cycle, not by a process-wide singleton.
type Conversation struct {
	Intents   []Intent
	Decisions []Decision
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// RecordIntent appends a routed intent.
func (c *Conversation) RecordIntent(intent Intent) {
	c.Intents = append(c.Intents, intent)
}

// RecordDecision appends a finalized decision.
func (c *Conversation) RecordDecision(decision Decision) {
	c.Decisions = append(c.Decisions, decision)
}

// LastCity returns the most recent city parameter seen in the conversation,
// or "" when none was mentioned. Lets "what about tomorrow?" inherit the
// city from "weather in Boston".
func (c *Conversation) LastCity() string {
	for i := len(c.Intents) - 1; i >= 0; i-- {
		if city, ok := c.Intents[i].Params["city"].(string); ok && city != "" {
			return city
		}
	}
	return ""
}
