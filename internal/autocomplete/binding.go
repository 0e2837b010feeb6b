package autocomplete

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/debnet/fallout/internal/errors"
)

const (
	// DefaultMinLength is the number of characters typed before a search fires
	DefaultMinLength = 2
	// DefaultOrderBy sorts results by their label on the API side
	DefaultOrderBy = "name"

	// Binding names used by the campaign and character pages
	BindingItem         = "item"
	BindingEffect       = "effect"
	BindingLootTemplate = "loottemplate"
)

// Binding ties an autocomplete widget to a search endpoint
type Binding struct {
	// Name identifies the binding in URLs and config, e.g. "item"
	Name string
	// Endpoint is the API path searched, e.g. "/api/item/"
	Endpoint string
	// Fields is the projection requested from the API
	Fields []string
	// Display asks the API for *_display companions of choice fields
	Display bool
	// OrderBy is sent as order_by
	OrderBy string
	// MinLength is the minimum term length, in characters, before searching
	MinLength int
	// Transform shapes records into options
	Transform TransformConfig
}

// DefaultBindings returns the item, effect and loot template searches
func DefaultBindings() []Binding {
	return []Binding{
		{
			Name:      BindingItem,
			Endpoint:  "/api/item/",
			Fields:    []string{"id", "name", "type"},
			Display:   true,
			OrderBy:   DefaultOrderBy,
			MinLength: DefaultMinLength,
			Transform: DefaultTransformConfig().WithAnnotation("type_display"),
		},
		{
			Name:      BindingEffect,
			Endpoint:  "/api/effect/",
			Fields:    []string{"id", "name"},
			OrderBy:   DefaultOrderBy,
			MinLength: DefaultMinLength,
			Transform: DefaultTransformConfig(),
		},
		{
			Name:      BindingLootTemplate,
			Endpoint:  "/api/loottemplate/",
			Fields:    []string{"id", "name"},
			OrderBy:   DefaultOrderBy,
			MinLength: DefaultMinLength,
			Transform: DefaultTransformConfig(),
		},
	}
}

// Validate ensures the binding can build a query
func (b *Binding) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Name", b.Name, vb)
	errors.ValidateRequired("Endpoint", b.Endpoint, vb)
	if len(b.Fields) == 0 {
		vb.RequiredField("Fields")
	}
	errors.ValidateNonNegative("MinLength", b.MinLength, vb)
	errors.ValidateRequired("Transform.LabelField", b.Transform.LabelField, vb)
	errors.ValidateRequired("Transform.ValueField", b.Transform.ValueField, vb)

	return vb.Build()
}

// Triggers reports whether term is long enough to search
func (b *Binding) Triggers(term string) bool {
	return utf8.RuneCountInString(term) >= b.MinLength
}

// Query builds the search query string for term
func (b *Binding) Query(term string) url.Values {
	q := url.Values{}
	q.Set("name__icontains", term)
	q.Set("fields", strings.Join(b.Fields, ","))
	q.Set("order_by", b.OrderBy)
	if b.Display {
		q.Set("display", "1")
	}
	return q
}

// Options shapes an envelope with the binding's transform config
func (b *Binding) Options(envelope *Envelope) []Option {
	return Transform(envelope, b.Transform)
}
