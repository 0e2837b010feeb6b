package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/debnet/fallout/internal/clients/falloutapi"
	falloutapimock "github.com/debnet/fallout/internal/clients/falloutapi/mock"
	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
	"github.com/debnet/fallout/internal/orchestrators/combat"
	"github.com/debnet/fallout/internal/pkg/idgen"
	"github.com/debnet/fallout/internal/simulation"
)

func strPtr(s string) *string { return &s }

func TestOrchestrator_Simulate(t *testing.T) {
	fields := []formdata.Field{
		{Name: "type", Value: "fight"},
		{Name: "targets", Value: "3"},
		{Name: "targets", Value: "5"},
	}

	testCases := []struct {
		name      string
		result    simulation.Result
		err       error
		wantAlert string
		wantShow  bool
		wantErr   func(error) bool
	}{
		{
			name:      "fight outcome with failure",
			result:    simulation.Outcome{Description: "ok", Failure: strPtr("oops")},
			wantAlert: "ok\n\noops",
			wantShow:  true,
		},
		{
			name:      "burst results",
			result:    simulation.MessageList{Descriptions: []string{"a", "b"}},
			wantAlert: "a\n\nb",
			wantShow:  true,
		},
		{
			name:      "error message",
			result:    simulation.Message{Text: "Character not found"},
			wantAlert: "Character not found",
			wantShow:  true,
		},
		{
			name:   "empty answer",
			result: simulation.Empty{},
		},
		{
			name:      "unreachable endpoint",
			err:       errors.Network("connection refused"),
			wantAlert: combat.NoticeUnavailable,
			wantShow:  true,
		},
		{
			name: "malformed answer",
			err:  errors.MalformedResponse("unexpected number"),
		},
		{
			name:    "canceled",
			err:     errors.Canceled("request canceled"),
			wantErr: errors.IsCanceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := falloutapimock.NewMockClient(ctrl)

			svc, err := combat.NewOrchestrator(&combat.Config{
				Client:      mockClient,
				IDGenerator: idgen.NewSequential("sim"),
			})
			require.NoError(t, err)

			mockClient.EXPECT().
				Simulate(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, input *falloutapi.SimulateInput) (simulation.Result, error) {
					assert.Equal(t, []string{"type", "targets"}, input.Form.Keys())
					targets, _ := input.Form.Get("targets")
					assert.Equal(t, []string{"3", "5"}, targets.All())
					return tc.result, tc.err
				})

			out, err := svc.Simulate(context.Background(), &combat.SimulateInput{Fields: fields})
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr(err))
				assert.Nil(t, out)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "sim_1", out.RequestID)
			assert.Equal(t, tc.wantAlert, out.Alert)
			assert.Equal(t, tc.wantShow, out.ShowAlert)
		})
	}
}

func TestNewOrchestrator_Validation(t *testing.T) {
	svc, err := combat.NewOrchestrator(&combat.Config{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "Client")
	assert.Contains(t, err.Error(), "IDGenerator")
}
