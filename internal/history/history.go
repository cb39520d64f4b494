// internal/history/history.go

// Package history keeps a bounded in-memory record of finalized decisions
// and optionally mirrors them to an external index.
package history

import (
	"sync"

	"assistant-agents/internal/models"
)

const DefaultCapacity = 50

// History is a bounded FIFO of finalized decisions. When full, recording a
// new decision evicts the oldest. Safe for concurrent use.
type History struct {
	mu       sync.RWMutex
	entries  []models.Decision
	capacity int
}

func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Record appends a decision, evicting the oldest entry when at capacity.
func (h *History) Record(d models.Decision) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.capacity {
		h.entries = append(h.entries[1:], d)
		return
	}
	h.entries = append(h.entries, d)
}

// Recent returns up to n decisions, newest first. n <= 0 returns all.
func (h *History) Recent(n int) []models.Decision {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]models.Decision, n)
	for i := 0; i < n; i++ {
		out[i] = h.entries[len(h.entries)-1-i]
	}
	return out
}

// Len returns the number of retained decisions.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
