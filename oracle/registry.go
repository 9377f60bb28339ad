package oracle

import (
	"fmt"
	"sync"

	"ga4oracle/container"

	"github.com/google/uuid"
)

// ContainerRegistry holds containers mined by load_container in
// memory, keyed by an opaque handle, so a later analyze_page call
// doesn't need to re-fetch or re-parse the container on every page.
type ContainerRegistry struct {
	mu    sync.RWMutex
	items map[string]*container.Model
}

// NewContainerRegistry returns an empty registry.
func NewContainerRegistry() *ContainerRegistry {
	return &ContainerRegistry{items: make(map[string]*container.Model)}
}

// Store assigns a new handle to model and returns it.
func (r *ContainerRegistry) Store(model *container.Model) string {
	handle := uuid.NewString()
	r.mu.Lock()
	r.items[handle] = model
	r.mu.Unlock()
	return handle
}

// Get resolves a handle back to its container model.
func (r *ContainerRegistry) Get(handle string) (*container.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[handle]
	if !ok {
		return nil, fmt.Errorf("oracle: unknown container handle %q; call load_container first", handle)
	}
	return m, nil
}
