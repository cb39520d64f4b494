// internal/capability/registry.go
package capability

import (
	"iter"
	"sync"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/validation"
)

// Registry holds the capabilities attached to an agent. It is populated at
// startup and read-mostly afterwards.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Capability
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Capability),
	}
}

// Register adds a capability. Registering two capabilities with the same
// name is a programming-contract violation and fails with
// KindDuplicateCapability; callers are expected to treat it as fatal at
// startup.
func (r *Registry) Register(cap Capability) error {
	if err := validation.ValidateCapabilityNaming(cap.Name()); err != nil {
		return errors.NewValidationError(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[cap.Name()]; exists {
		return errors.NewDuplicateCapabilityError(cap.Name())
	}
	r.byName[cap.Name()] = cap
	r.order = append(r.order, cap.Name())
	return nil
}

// Get returns the registered capability or a KindNotFound error.
func (r *Registry) Get(name string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cap, exists := r.byName[name]
	if !exists {
		return nil, errors.NewNotFoundError("capability", name)
	}
	return cap, nil
}

// Names returns a lazy, restartable sequence of registered names in
// registration order.
func (r *Registry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		r.mu.RLock()
		names := make([]string, len(r.order))
		copy(names, r.order)
		r.mu.RUnlock()

		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
