// Package simulation classifies the combat simulation endpoint's response
// and renders the text shown in the page's alert dialog.
package simulation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/debnet/fallout/internal/errors"
)

// alertSeparator joins the messages of one alert
const alertSeparator = "\n\n"

// Result is one of Empty, Message, MessageList or Outcome
type Result interface {
	isResult()
}

// Empty means the endpoint had nothing to report; no alert is shown
type Empty struct{}

// Message is a bare string, typically an error reported by the endpoint
type Message struct {
	Text string
}

// MessageList holds the descriptions of a burst, one per target
type MessageList struct {
	Descriptions []string
}

// Outcome is a single fight result, optionally followed by the failure that
// came with it
type Outcome struct {
	Description string
	Failure     *string
}

func (Empty) isResult()       {}
func (Message) isResult()     {}
func (MessageList) isResult() {}
func (Outcome) isResult()     {}

type describedRecord struct {
	Description *string `json:"description"`
}

type outcomeRecord struct {
	Description *string         `json:"description"`
	Fail        json.RawMessage `json:"fail"`
}

// Classify turns a response body into a Result. Bodies that are none of an
// empty body, a string, an array of {description} or a {description, fail?}
// object are a MalformedResponse.
func Classify(body []byte) (Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Empty{}, nil
	}

	switch body[0] {
	case '"':
		var text string
		if err := json.Unmarshal(body, &text); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, "simulation message is not a valid string")
		}
		if text == "" {
			return Empty{}, nil
		}
		return Message{Text: text}, nil

	case '[':
		var records []*describedRecord
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, "simulation results are not a list of descriptions")
		}
		list := MessageList{Descriptions: make([]string, 0, len(records))}
		for i, record := range records {
			if record == nil {
				return nil, errors.MalformedResponsef("simulation result %d is null", i)
			}
			// a missing description joins as an empty line
			description := ""
			if record.Description != nil {
				description = *record.Description
			}
			list.Descriptions = append(list.Descriptions, description)
		}
		return list, nil

	case '{':
		var record outcomeRecord
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, "simulation outcome is not a valid object")
		}
		if record.Description == nil {
			return nil, errors.MalformedResponse("simulation outcome has no description")
		}

		outcome := Outcome{Description: *record.Description}
		failure, err := classifyFailure(record.Fail)
		if err != nil {
			return nil, err
		}
		outcome.Failure = failure
		return outcome, nil
	}

	return nil, errors.MalformedResponse("simulation response is not a string, list or object")
}

func classifyFailure(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var fail describedRecord
	if err := json.Unmarshal(raw, &fail); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, "simulation failure is not a valid object")
	}
	if fail.Description == nil {
		return nil, errors.MalformedResponse("simulation failure has no description")
	}
	return fail.Description, nil
}

// AlertText returns the alert dialog text for a result and whether an alert
// is shown at all.
func AlertText(result Result) (string, bool) {
	switch r := result.(type) {
	case Message:
		return r.Text, true
	case MessageList:
		return strings.Join(r.Descriptions, alertSeparator), true
	case Outcome:
		if r.Failure != nil {
			return r.Description + alertSeparator + *r.Failure, true
		}
		return r.Description, true
	default:
		return "", false
	}
}

// Kind names the result variant, for logs and transport payloads
func Kind(result Result) string {
	switch result.(type) {
	case Empty:
		return "empty"
	case Message:
		return "message"
	case MessageList:
		return "message_list"
	case Outcome:
		return "outcome"
	default:
		return "unknown"
	}
}
