// internal/bus/bus.go

// Package bus provides in-process message passing between agents. Each
// registered agent owns a FIFO queue; senders enqueue, recipients drain.
package bus

import (
	"sync"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/metrics"
	"assistant-agents/internal/models"
)

// Bus routes messages between registered agents. Safe for concurrent use.
type Bus struct {
	mu     sync.Mutex
	queues map[string][]models.Message
	logger logger.Logger
}

func New(log logger.Logger) *Bus {
	return &Bus{
		queues: make(map[string][]models.Message),
		logger: log,
	}
}

// Register creates an empty queue for the agent. Registering an existing
// agent is a no-op so restarts are harmless.
func (b *Bus) Register(agent string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.queues[agent]; !ok {
		b.queues[agent] = nil
	}
}

// Send enqueues a message for its recipient. The recipient must be
// registered.
func (b *Bus) Send(msg models.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.queues[msg.Recipient]; !ok {
		return errors.NewNotFoundError("recipient", msg.Recipient)
	}

	b.queues[msg.Recipient] = append(b.queues[msg.Recipient], msg)
	metrics.BusQueueDepth.WithLabelValues(msg.Recipient).Set(float64(len(b.queues[msg.Recipient])))

	b.logger.Debug("message enqueued", map[string]interface{}{
		"messageId": msg.ID,
		"sender":    msg.Sender,
		"recipient": msg.Recipient,
		"type":      string(msg.Type),
	})
	return nil
}

// Receive dequeues the oldest pending message for the agent.
func (b *Bus) Receive(agent string) (models.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue, ok := b.queues[agent]
	if !ok {
		return models.Message{}, errors.NewNotFoundError("recipient", agent)
	}
	if len(queue) == 0 {
		return models.Message{}, errors.NewQueueEmptyError(agent)
	}

	msg := queue[0]
	b.queues[agent] = queue[1:]
	metrics.BusQueueDepth.WithLabelValues(agent).Set(float64(len(b.queues[agent])))
	return msg, nil
}

// Drain dequeues every pending message for the agent in FIFO order.
func (b *Bus) Drain(agent string) ([]models.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue, ok := b.queues[agent]
	if !ok {
		return nil, errors.NewNotFoundError("recipient", agent)
	}

	b.queues[agent] = nil
	metrics.BusQueueDepth.WithLabelValues(agent).Set(0)
	return queue, nil
}

// Broadcast sends a copy of the message to every registered agent except the
// sender. Each copy keeps its own id.
func (b *Bus) Broadcast(sender, content string, msgType models.MessageType) int {
	b.mu.Lock()
	recipients := make([]string, 0, len(b.queues))
	for agent := range b.queues {
		if agent != sender {
			recipients = append(recipients, agent)
		}
	}
	b.mu.Unlock()

	for _, recipient := range recipients {
		// Send re-checks registration; a concurrent unregister just skips.
		_ = b.Send(models.NewMessage(sender, recipient, content, msgType))
	}
	return len(recipients)
}

// Pending returns the queue depth for the agent, 0 when unregistered.
func (b *Bus) Pending(agent string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues[agent])
}
