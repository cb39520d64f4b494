// internal/models/message.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageType classifies inter-agent messages.
type MessageType string

const (
	MessageQuery        MessageType = "query"
	MessageResponse     MessageType = "response"
	MessageNotification MessageType = "notification"
)

// Message is the unit of inter-agent communication. Messages are queued and
// delivered in FIFO order per recipient.
type Message struct {
	ID        string      `json:"id"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage builds a message with a fresh id and timestamp.
func NewMessage(sender, recipient, content string, msgType MessageType) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Type:      msgType,
		Timestamp: time.Now().UTC(),
	}
}
