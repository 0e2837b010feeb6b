// Package uistate persists small per-session UI values, such as the last
// active tab of a page, across page loads.
package uistate

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=uistatemock github.com/debnet/fallout/internal/repositories/uistate Repository

// Entry is one stored UI value
type Entry struct {
	// Session owning the value, e.g. the Django session id
	Session string `json:"session"`

	// Key of the value, e.g. "activePanel"
	Key string `json:"key"`

	// Value as written by the page
	Value string `json:"value"`

	// When the value was last written
	UpdatedAt time.Time `json:"updated_at"`
}

// GetInput contains parameters for reading a value
type GetInput struct {
	Session string
	Key     string
}

// GetOutput contains the stored entry
type GetOutput struct {
	Entry *Entry
}

// SetInput contains parameters for writing a value
type SetInput struct {
	Session string
	Key     string
	Value   string
}

// SetOutput contains the entry as written
type SetOutput struct {
	Entry *Entry
}

// Repository defines the storage operations for UI state. Writes are
// last-write-wins.
type Repository interface {
	// Get returns the entry, or a NotFound error when nothing was written
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set writes the entry, replacing any previous value
	Set(ctx context.Context, input SetInput) (*SetOutput, error)
}

const (
	errSessionEmpty = "session cannot be empty"
	errKeyEmpty     = "key cannot be empty"
)
