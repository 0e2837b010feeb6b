// Package panel remembers the active tab of the character and campaign pages
// between page loads.
package panel

//go:generate mockgen -destination=mock/mock_service.go -package=panelmock github.com/debnet/fallout/internal/orchestrators/panel Service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/repositories/uistate"
)

// StateKey is the UI state key holding the active panel
const StateKey = "activePanel"

// Service defines the interface for panel operations
type Service interface {
	ActivatePanel(ctx context.Context, input *ActivatePanelInput) (*ActivatePanelOutput, error)
	InitialPanel(ctx context.Context, input *InitialPanelInput) (*InitialPanelOutput, error)
}

// Config holds the dependencies for the panel orchestrator
type Config struct {
	StateRepo uistate.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.StateRepo == nil {
		vb.RequiredField("StateRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	stateRepo uistate.Repository
}

// NewOrchestrator creates a new panel orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{stateRepo: cfg.StateRepo}, nil
}

// ActivatePanel stores the panel as the session's active one
func (o *orchestrator) ActivatePanel(ctx context.Context, input *ActivatePanelInput) (*ActivatePanelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Session == "" {
		return nil, errors.InvalidArgument("session is required")
	}
	if input.Panel == "" {
		return nil, errors.InvalidArgument("panel is required")
	}

	if _, err := o.stateRepo.Set(ctx, uistate.SetInput{
		Session: input.Session,
		Key:     StateKey,
		Value:   input.Panel,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to store active panel")
	}

	return &ActivatePanelOutput{Panel: input.Panel}, nil
}

// InitialPanel returns the stored panel when the page still renders it, else
// the first panel. A failing store never blocks the page.
func (o *orchestrator) InitialPanel(ctx context.Context, input *InitialPanelInput) (*InitialPanelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Panels) == 0 {
		return &InitialPanelOutput{Source: SourceNone}, nil
	}

	first := &InitialPanelOutput{Panel: input.Panels[0], Source: SourceFirst}
	if input.Session == "" {
		return first, nil
	}

	out, err := o.stateRepo.Get(ctx, uistate.GetInput{Session: input.Session, Key: StateKey})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("Failed to read active panel",
				"session", input.Session,
				"error", err,
			)
		}
		return first, nil
	}

	if !slices.Contains(input.Panels, out.Entry.Value) {
		return first, nil
	}

	return &InitialPanelOutput{Panel: out.Entry.Value, Source: SourceStored}, nil
}
