package uistate

import (
	"context"
	"sync"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/pkg/clock"
)

type inMemoryRepository struct {
	mu      sync.RWMutex
	clock   clock.Clock
	entries map[string]Entry
}

// NewInMemoryRepository creates a process-local repository, for development
// and single instance deployments.
func NewInMemoryRepository(c clock.Clock) Repository {
	if c == nil {
		c = clock.New()
	}
	return &inMemoryRepository{
		clock:   c,
		entries: make(map[string]Entry),
	}
}

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.Session, input.Key); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[buildKey(input.Session, input.Key)]
	if !ok {
		return nil, errors.NotFoundf("ui state %s not found", input.Key)
	}
	return &GetOutput{Entry: &entry}, nil
}

func (r *inMemoryRepository) Set(_ context.Context, input SetInput) (*SetOutput, error) {
	if err := validateKey(input.Session, input.Key); err != nil {
		return nil, err
	}

	entry := Entry{
		Session:   input.Session,
		Key:       input.Key,
		Value:     input.Value,
		UpdatedAt: r.clock.Now(),
	}

	r.mu.Lock()
	r.entries[buildKey(input.Session, input.Key)] = entry
	r.mu.Unlock()

	return &SetOutput{Entry: &entry}, nil
}
