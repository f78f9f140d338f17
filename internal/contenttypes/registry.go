// Package contenttypes holds the process-wide content-type registry and the
// factory that materializes typed or dynamic content payloads from registered
// definitions. The registry is populated once at startup and injected where
// needed; it is read-mostly afterwards.
package contenttypes

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrDefinitionRequired = errors.New("content types: definition is required")
	ErrDefinitionInvalid  = errors.New("content types: definition is invalid")
)

// Registry maps content-type identifiers to their definitions.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*ContentType
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*ContentType),
	}
}

// Register adds or replaces a definition. Definitions are cloned on the way
// in so later caller mutations cannot corrupt the registry.
func (r *Registry) Register(ct *ContentType) error {
	if ct == nil {
		return ErrDefinitionRequired
	}
	if err := ct.Validate(); err != nil {
		return errors.Join(ErrDefinitionInvalid, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[normalizeTypeID(ct.ID)] = cloneContentType(ct)
	return nil
}

// GetByID resolves a definition, reporting whether it is registered.
func (r *Registry) GetByID(typeID string) (*ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ct, ok := r.types[normalizeTypeID(typeID)]
	if !ok {
		return nil, false
	}
	return cloneContentType(ct), true
}

// List returns every registered definition sorted by id.
func (r *Registry) List() []*ContentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ContentType, 0, len(r.types))
	for _, ct := range r.types {
		out = append(out, cloneContentType(ct))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func normalizeTypeID(typeID string) string {
	return strings.ToLower(strings.TrimSpace(typeID))
}
