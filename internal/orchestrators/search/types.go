package search

import (
	"net/http"

	"github.com/debnet/fallout/internal/autocomplete"
)

// AutocompleteInput defines the request for one autocomplete query
type AutocompleteInput struct {
	// Binding name, e.g. "item"
	Binding string
	// Term typed by the player
	Term string
	// Session scopes the widget so players never cancel each other
	Session string
	// Widget identifies the input element; defaults to the binding name
	Widget string
	// Seq is the browser's keystroke counter for the widget, zero when unset
	Seq uint64
	// Header carries the browser headers to forward
	Header http.Header
}

// AutocompleteOutput defines the response for an autocomplete query
type AutocompleteOutput struct {
	RequestID string
	Options   []autocomplete.Option
	// Notice is set when the search API could not be reached
	Notice string
	// Stale is set when a newer query of the same widget superseded this one
	Stale bool
}

// ListBindingsOutput lists the configured search bindings
type ListBindingsOutput struct {
	Bindings []autocomplete.Binding
}
