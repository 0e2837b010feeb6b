// Package search implements the autocomplete orchestrator: it runs the
// search behind each autocomplete widget and shapes the results.
package search

//go:generate mockgen -destination=mock/mock_service.go -package=searchmock github.com/debnet/fallout/internal/orchestrators/search Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/clients/falloutapi"
	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/pkg/idgen"
)

// NoticeUnavailable is shown under the widget when the API is unreachable
const NoticeUnavailable = "Search is unavailable right now, try again in a moment."

// Service defines the interface for autocomplete operations
type Service interface {
	Autocomplete(ctx context.Context, input *AutocompleteInput) (*AutocompleteOutput, error)
	ListBindings(ctx context.Context) (*ListBindingsOutput, error)
}

// Config holds the dependencies for the search orchestrator
type Config struct {
	Client      falloutapi.Client
	Bindings    []autocomplete.Binding
	IDGenerator idgen.Generator
	// Tracker is optional, a fresh one is created when nil
	Tracker *autocomplete.Tracker
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
	if len(c.Bindings) == 0 {
		vb.RequiredField("Bindings")
	}

	seen := make(map[string]bool, len(c.Bindings))
	for i := range c.Bindings {
		b := &c.Bindings[i]
		if err := b.Validate(); err != nil {
			vb.Fieldf("Bindings", "binding %q: %v", b.Name, err)
			continue
		}
		if seen[b.Name] {
			vb.Fieldf("Bindings", "duplicate binding %q", b.Name)
		}
		seen[b.Name] = true
	}

	return vb.Build()
}

type orchestrator struct {
	client   falloutapi.Client
	idGen    idgen.Generator
	tracker  *autocomplete.Tracker
	bindings map[string]autocomplete.Binding
	ordered  []autocomplete.Binding
}

// NewOrchestrator creates a new search orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tracker := cfg.Tracker
	if tracker == nil {
		tracker = autocomplete.NewTracker()
	}

	bindings := make(map[string]autocomplete.Binding, len(cfg.Bindings))
	for _, b := range cfg.Bindings {
		bindings[b.Name] = b
	}

	return &orchestrator{
		client:   cfg.Client,
		idGen:    cfg.IDGenerator,
		tracker:  tracker,
		bindings: bindings,
		ordered:  append([]autocomplete.Binding(nil), cfg.Bindings...),
	}, nil
}

// Autocomplete searches the binding's endpoint for the term. Failures of the
// search API never fail the call: an unreachable API yields a notice and a
// malformed answer yields no options.
func (o *orchestrator) Autocomplete(ctx context.Context, input *AutocompleteInput) (*AutocompleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	binding, ok := o.bindings[input.Binding]
	if !ok {
		return nil, errors.NotFoundf("unknown autocomplete binding %q", input.Binding)
	}

	out := &AutocompleteOutput{
		RequestID: o.idGen.Generate(),
		Options:   []autocomplete.Option{},
	}

	if !binding.Triggers(input.Term) {
		return out, nil
	}

	// Anonymous queries have no widget identity and are not tracked
	var ticket *autocomplete.Ticket
	if input.Session != "" {
		ctx, ticket = o.tracker.BeginSeq(ctx, widgetKey(input), input.Seq)
		defer ticket.Release()

		if !ticket.Current() {
			logStale(out, binding, ticket)
			out.Stale = true
			return out, nil
		}
	}

	envelope, err := o.client.Search(ctx, &falloutapi.SearchInput{
		Endpoint: binding.Endpoint,
		Query:    binding.Query(input.Term),
		Header:   input.Header,
	})

	if ticket != nil && !ticket.Current() {
		logStale(out, binding, ticket)
		out.Stale = true
		return out, nil
	}

	if err != nil {
		switch {
		case errors.IsNetwork(err):
			slog.Warn("Search API unreachable",
				"request_id", out.RequestID,
				"binding", binding.Name,
				"error", err,
			)
			out.Notice = NoticeUnavailable
			return out, nil
		case errors.IsMalformedResponse(err):
			slog.Warn("Search API returned a malformed envelope",
				"request_id", out.RequestID,
				"binding", binding.Name,
				"error", err,
			)
			return out, nil
		default:
			return nil, errors.Wrapf(err, "failed to search %s", binding.Name)
		}
	}

	out.Options = binding.Options(envelope)

	slog.Debug("Autocomplete answered",
		"request_id", out.RequestID,
		"binding", binding.Name,
		"term", input.Term,
		"options", len(out.Options),
	)

	return out, nil
}

// ListBindings returns the bindings in configuration order
func (o *orchestrator) ListBindings(_ context.Context) (*ListBindingsOutput, error) {
	return &ListBindingsOutput{
		Bindings: append([]autocomplete.Binding(nil), o.ordered...),
	}, nil
}

func logStale(out *AutocompleteOutput, binding autocomplete.Binding, ticket *autocomplete.Ticket) {
	slog.Debug("Discarding superseded autocomplete query",
		"request_id", out.RequestID,
		"binding", binding.Name,
		"generation", ticket.Generation(),
	)
}

func widgetKey(input *AutocompleteInput) string {
	widget := input.Widget
	if widget == "" {
		widget = input.Binding
	}
	return strings.Join([]string{input.Session, input.Binding, widget}, "|")
}
