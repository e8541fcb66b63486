// Package columns holds the per-column inclusion flags and display names the
// user curates before export.
package columns

import (
	"fmt"

	"carbonfront/internal/domain"
)

// Column is one registry entry.
type Column struct {
	Key         string `json:"key"`
	Included    bool   `json:"included"`
	DisplayName string `json:"display_name"`
}

// Header returns the display name, falling back to the original key when the
// display name was cleared.
func (c Column) Header() string {
	if c.DisplayName == "" {
		return c.Key
	}
	return c.DisplayName
}

// Registry keeps columns in the order their keys were first observed.
// The zero value is an empty registry.
type Registry struct {
	keys    []string
	entries map[string]*Column
}

// NewRegistry creates a registry with every key included and its display
// name defaulted to the key. Duplicate keys are ignored.
func NewRegistry(keys []string) *Registry {
	r := &Registry{
		keys:    make([]string, 0, len(keys)),
		entries: make(map[string]*Column, len(keys)),
	}
	for _, k := range keys {
		if _, dup := r.entries[k]; dup {
			continue
		}
		r.keys = append(r.keys, k)
		r.entries[k] = &Column{Key: k, Included: true, DisplayName: k}
	}
	return r
}

// Len returns the number of columns.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the column keys in registry order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns a copy of the column stored under key.
func (r *Registry) Get(key string) (Column, bool) {
	if r == nil {
		return Column{}, false
	}
	c, ok := r.entries[key]
	if !ok {
		return Column{}, false
	}
	return *c, true
}

// Columns returns copies of all columns in registry order.
func (r *Registry) Columns() []Column {
	if r == nil {
		return nil
	}
	out := make([]Column, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, *r.entries[k])
	}
	return out
}

// Included returns the included columns in registry order.
func (r *Registry) Included() []Column {
	if r == nil {
		return nil
	}
	var out []Column
	for _, k := range r.keys {
		if c := r.entries[k]; c.Included {
			out = append(out, *c)
		}
	}
	return out
}

// IncludedCount returns how many columns will be exported.
func (r *Registry) IncludedCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, c := range r.entries {
		if c.Included {
			n++
		}
	}
	return n
}

// Toggle flips a column's inclusion flag. The display name is untouched.
func (r *Registry) Toggle(key string) error {
	c, err := r.lookup(key)
	if err != nil {
		return err
	}
	c.Included = !c.Included
	return nil
}

// SetIncluded sets a single column's inclusion flag.
func (r *Registry) SetIncluded(key string, included bool) error {
	c, err := r.lookup(key)
	if err != nil {
		return err
	}
	c.Included = included
	return nil
}

// SetAll sets every column's inclusion flag.
func (r *Registry) SetAll(included bool) {
	if r == nil {
		return
	}
	for _, c := range r.entries {
		c.Included = included
	}
}

// Rename changes a column's display name. Collisions with other display
// names are allowed.
func (r *Registry) Rename(key, displayName string) error {
	c, err := r.lookup(key)
	if err != nil {
		return err
	}
	c.DisplayName = displayName
	return nil
}

func (r *Registry) lookup(key string) (*Column, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownColumn, key)
	}
	c, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownColumn, key)
	}
	return c, nil
}
