// Package store persists formula definitions.
package store

import (
	"context"
	"errors"
	"time"
)

// Definition is a saved formula together with the variables a user is
// asked to fill in when scoring it.
type Definition struct {
	ID        string
	Name      string
	Formula   string
	Variables []Variable
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variable describes one input of a definition.
type Variable struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

// Keys returns the variable keys in declaration order.
func (d Definition) Keys() []string {
	keys := make([]string, len(d.Variables))
	for i, v := range d.Variables {
		keys[i] = v.Key
	}
	return keys
}

// clone returns a copy that shares no slices with d.
func (d Definition) clone() Definition {
	d.Variables = append([]Variable(nil), d.Variables...)
	return d
}

// Store persists formula definitions.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts or replaces the definition with d.ID.
	Save(ctx context.Context, d Definition) error

	// Load returns the definition with the given ID.
	// Returns ErrNotFound if it does not exist.
	Load(ctx context.Context, id string) (Definition, error)

	// List returns all definitions ordered by name, then ID.
	List(ctx context.Context) ([]Definition, error)

	// Delete removes a definition. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}

// Sentinel errors.
var (
	// ErrNotFound is returned when a definition does not exist.
	ErrNotFound = errors.New("definition not found")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store closed")

	// ErrMissingID is returned when saving a definition without an ID.
	ErrMissingID = errors.New("definition id is required")
)
