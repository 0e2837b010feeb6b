// Package combat implements the simulation orchestrator: it posts the fight
// and burst simulation forms and turns the answer into alert text.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/debnet/fallout/internal/orchestrators/combat Service

import (
	"context"
	"log/slog"

	"github.com/debnet/fallout/internal/clients/falloutapi"
	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
	"github.com/debnet/fallout/internal/pkg/idgen"
	"github.com/debnet/fallout/internal/simulation"
)

// NoticeUnavailable is alerted when the simulation endpoint is unreachable
const NoticeUnavailable = "The simulation could not be run, the server is unreachable."

// Service defines the interface for simulation operations
type Service interface {
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	Client      falloutapi.Client
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	client falloutapi.Client
	idGen  idgen.Generator
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		client: cfg.Client,
		idGen:  cfg.IDGenerator,
	}, nil
}

// Simulate collects the form fields, posts them and classifies the answer
func (o *orchestrator) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &SimulateOutput{
		RequestID: o.idGen.Generate(),
		Form:      formdata.Collect(input.Fields),
	}

	result, err := o.client.Simulate(ctx, &falloutapi.SimulateInput{
		Form:   out.Form,
		Header: input.Header,
	})
	if err != nil {
		switch {
		case errors.IsNetwork(err):
			slog.Warn("Simulation endpoint unreachable",
				"request_id", out.RequestID,
				"error", err,
			)
			out.Result = simulation.Message{Text: NoticeUnavailable}
		case errors.IsMalformedResponse(err):
			slog.Warn("Simulation endpoint returned an unexpected payload",
				"request_id", out.RequestID,
				"error", err,
			)
			out.Result = simulation.Empty{}
		default:
			return nil, errors.Wrap(err, "failed to run simulation")
		}
	} else {
		out.Result = result
	}

	out.Alert, out.ShowAlert = simulation.AlertText(out.Result)

	slog.Info("Simulation answered",
		"request_id", out.RequestID,
		"fields", out.Form.Len(),
		"kind", simulation.Kind(out.Result),
	)

	return out, nil
}
