package provider

import (
	"fmt"
	"sort"
)

// Registry holds the set of known providers and their enablement state.
// It is a read-only view over configuration: built once at startup,
// safe for concurrent use, no I/O.
type Registry struct {
	byID    map[string]Descriptor
	ordered []Descriptor
}

// NewRegistry builds a registry from descriptors. Later duplicates of the
// same id replace earlier ones.
func NewRegistry(descriptors []Descriptor) *Registry {
	byID := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byID[d.ID] = d
	}

	ordered := make([]Descriptor, 0, len(byID))
	for _, d := range byID {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].ID < ordered[j].ID
	})

	return &Registry{byID: byID, ordered: ordered}
}

// List returns all known providers sorted by display order, ties broken by
// id. Callers rendering a login widget use this directly.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Exists reports whether the provider id is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IsEnabled reports whether the provider id is registered and enabled.
func (r *Registry) IsEnabled(id string) bool {
	d, ok := r.byID[id]
	return ok && d.Enabled
}

// Get returns the descriptor for the provider id or ErrUnknownProvider.
func (r *Registry) Get(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}
	return d, nil
}
