// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/clients/falloutapi"
	falloutapimock "github.com/debnet/fallout/internal/clients/falloutapi/mock"
	"github.com/debnet/fallout/internal/simulation"
)

// ExpectSearch expects one search of endpoint for term and answers with
// records
func ExpectSearch(mockClient *falloutapimock.MockClient, endpoint, term string, records ...autocomplete.Record) *gomock.Call {
	return mockClient.EXPECT().
		Search(gomock.Any(), gomock.Cond(func(input *falloutapi.SearchInput) bool {
			return input.Endpoint == endpoint && input.Query.Get("name__icontains") == term
		})).
		DoAndReturn(func(_ context.Context, _ *falloutapi.SearchInput) (*autocomplete.Envelope, error) {
			results := make([]autocomplete.Record, len(records))
			copy(results, records)
			return &autocomplete.Envelope{Results: results}, nil
		})
}

// ExpectSearchError expects one search of endpoint failing with err
func ExpectSearchError(mockClient *falloutapimock.MockClient, endpoint string, err error) *gomock.Call {
	return mockClient.EXPECT().
		Search(gomock.Any(), gomock.Cond(func(input *falloutapi.SearchInput) bool {
			return input.Endpoint == endpoint
		})).
		Return(nil, err)
}

// ExpectSimulate expects one simulation answering with result
func ExpectSimulate(mockClient *falloutapimock.MockClient, result simulation.Result) *gomock.Call {
	return mockClient.EXPECT().
		Simulate(gomock.Any(), gomock.Any()).
		Return(result, nil)
}
