package autocomplete

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Default record fields used for the label and the identifier
const (
	DefaultLabelField = "name"
	DefaultValueField = "id"
)

// Option is one autocomplete suggestion
type Option struct {
	Value string `json:"value"`
	ID    any    `json:"id"`
}

// TransformConfig names the record fields that feed an Option.
// Start from DefaultTransformConfig: zero values are used as given, an
// empty LabelField does not fall back to "name".
type TransformConfig struct {
	LabelField string
	ValueField string
	// AnnotationField, when set, is appended to the label in parentheses.
	AnnotationField *string
}

// DefaultTransformConfig labels records by name and identifies them by id
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{
		LabelField: DefaultLabelField,
		ValueField: DefaultValueField,
	}
}

// WithAnnotation returns a copy of the config annotating labels with field
func (c TransformConfig) WithAnnotation(field string) TransformConfig {
	c.AnnotationField = &field
	return c
}

// Transform builds one Option per record, in input order.
func Transform(envelope *Envelope, cfg TransformConfig) []Option {
	if envelope == nil {
		return []Option{}
	}

	options := make([]Option, 0, len(envelope.Results))
	for _, record := range envelope.Results {
		label := formatField(record, cfg.LabelField)
		if cfg.AnnotationField != nil {
			label += " (" + formatField(record, *cfg.AnnotationField) + ")"
		}

		options = append(options, Option{
			Value: label,
			ID:    record[cfg.ValueField],
		})
	}

	return options
}

// formatField renders a record field the way string concatenation does in
// the browser, so labels match what the page always showed.
func formatField(record Record, field string) string {
	v, ok := record[field]
	if !ok {
		return "undefined"
	}
	return formatScalar(v)
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := val.Float64(); err == nil {
			return formatFloat(f)
		}
		return val.String()
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
