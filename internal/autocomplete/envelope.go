package autocomplete

import (
	"bytes"
	"encoding/json"

	"github.com/debnet/fallout/internal/errors"
)

// Record is one search result: field name to scalar value
type Record map[string]any

// Envelope is the paginated search response. Only results is read.
type Envelope struct {
	Results []Record
}

// DecodeEnvelope parses a search response body.
// A body without a results array of objects is a MalformedResponse.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, "search response is not a JSON object")
	}

	results, ok := raw["results"]
	if !ok {
		return nil, errors.MalformedResponse("search response has no results")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(results, &items); err != nil || items == nil {
		return nil, errors.MalformedResponse("search results is not an array")
	}

	envelope := &Envelope{Results: make([]Record, 0, len(items))}
	for i, item := range items {
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()

		var record Record
		if err := dec.Decode(&record); err != nil || record == nil {
			return nil, errors.MalformedResponsef("search result %d is not an object", i)
		}
		envelope.Results = append(envelope.Results, record)
	}

	return envelope, nil
}
