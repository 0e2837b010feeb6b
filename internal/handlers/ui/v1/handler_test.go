package v1_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
	"github.com/debnet/fallout/internal/orchestrators/combat"
	combatmock "github.com/debnet/fallout/internal/orchestrators/combat/mock"
	"github.com/debnet/fallout/internal/orchestrators/dice"
	dicemock "github.com/debnet/fallout/internal/orchestrators/dice/mock"
	"github.com/debnet/fallout/internal/orchestrators/panel"
	panelmock "github.com/debnet/fallout/internal/orchestrators/panel/mock"
	"github.com/debnet/fallout/internal/orchestrators/search"
	searchmock "github.com/debnet/fallout/internal/orchestrators/search/mock"
	"github.com/debnet/fallout/internal/simulation"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockSearch *searchmock.MockService
	mockCombat *combatmock.MockService
	mockDice   *dicemock.MockService
	mockPanel  *panelmock.MockService
	server     *grpc.Server
	conn       *grpc.ClientConn
	client     uiv1.UIServiceClient
	ctx        context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSearch = searchmock.NewMockService(s.ctrl)
	s.mockCombat = combatmock.NewMockService(s.ctrl)
	s.mockDice = dicemock.NewMockService(s.ctrl)
	s.mockPanel = panelmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := uiv1.NewHandler(&uiv1.HandlerConfig{
		SearchService: s.mockSearch,
		CombatService: s.mockCombat,
		DiceService:   s.mockDice,
		PanelService:  s.mockPanel,
	})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	uiv1.RegisterUIServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = uiv1.NewUIServiceClient(conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(m map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(m)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) TestNewHandler_Validation() {
	h, err := uiv1.NewHandler(&uiv1.HandlerConfig{})
	s.Error(err)
	s.Nil(h)
}

func (s *HandlerTestSuite) TestAutocomplete() {
	s.mockSearch.EXPECT().
		Autocomplete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *search.AutocompleteInput) (*search.AutocompleteOutput, error) {
			s.Equal("item", input.Binding)
			s.Equal("stim", input.Term)
			s.Equal("abc", input.Session)
			s.Equal(uint64(3), input.Seq)
			s.Equal("sessionid=abc", input.Header.Get("Cookie"))
			return &search.AutocompleteOutput{
				RequestID: "req_1",
				Options: []autocomplete.Option{
					{Value: "Stimpak (Consumable)", ID: json.Number("5")},
					{Value: "Nuka-Cola", ID: "nuka"},
					{Value: "Vault Key", ID: json.Number("9007199254740993")},
					{Value: "Huge Vault Key", ID: json.Number("123456789012345678901234567890")},
				},
			}, nil
		})

	ctx := metadata.AppendToOutgoingContext(s.ctx, "cookie", "sessionid=abc")
	resp, err := s.client.Autocomplete(ctx, s.request(map[string]any{
		"binding": "item",
		"term":    "stim",
		"session": "abc",
		"seq":     3,
	}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("req_1", got["request_id"])
	s.Equal(false, got["stale"])
	s.Equal([]any{
		map[string]any{"value": "Stimpak (Consumable)", "id": float64(5)},
		map[string]any{"value": "Nuka-Cola", "id": "nuka"},
		map[string]any{"value": "Vault Key", "id": "9007199254740993"},
		map[string]any{"value": "Huge Vault Key", "id": "123456789012345678901234567890"},
	}, got["options"])
}

func (s *HandlerTestSuite) TestAutocomplete_NegativeSeq() {
	_, err := s.client.Autocomplete(s.ctx, s.request(map[string]any{
		"binding": "item",
		"term":    "stim",
		"seq":     -1,
	}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestAutocomplete_MissingBinding() {
	_, err := s.client.Autocomplete(s.ctx, s.request(map[string]any{"term": "stim"}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestAutocomplete_NotFoundKeepsCode() {
	s.mockSearch.EXPECT().
		Autocomplete(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound(`unknown autocomplete binding "weapon"`))

	_, err := s.client.Autocomplete(s.ctx, s.request(map[string]any{"binding": "weapon", "term": "laser"}))
	s.Equal(codes.NotFound, status.Code(err))
	s.True(errors.IsNotFound(errors.FromGRPCError(err)))
}

func (s *HandlerTestSuite) TestSimulate() {
	s.mockCombat.EXPECT().
		Simulate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *combat.SimulateInput) (*combat.SimulateOutput, error) {
			s.Equal([]formdata.Field{
				{Name: "targets", Value: "3"},
				{Name: "targets", Value: "5"},
			}, input.Fields)
			return &combat.SimulateOutput{
				RequestID: "sim_1",
				Result:    simulation.MessageList{Descriptions: []string{"a", "b"}},
				Alert:     "a\n\nb",
				ShowAlert: true,
			}, nil
		})

	resp, err := s.client.Simulate(s.ctx, s.request(map[string]any{
		"fields": []any{
			map[string]any{"name": "targets", "value": "3"},
			map[string]any{"name": "targets", "value": "5"},
		},
	}))
	s.Require().NoError(err)
	s.Equal(map[string]any{
		"request_id": "sim_1",
		"alert":      "a\n\nb",
		"show_alert": true,
		"kind":       "message_list",
	}, resp.AsMap())
}

func (s *HandlerTestSuite) TestSimulate_BadField() {
	_, err := s.client.Simulate(s.ctx, s.request(map[string]any{
		"fields": []any{"targets=3"},
	}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestSimulate_MalformedIsDataLoss() {
	s.mockCombat.EXPECT().
		Simulate(gomock.Any(), gomock.Any()).
		Return(nil, errors.MalformedResponse("unexpected payload"))

	_, err := s.client.Simulate(s.ctx, s.request(map[string]any{"fields": []any{}}))
	s.Equal(codes.DataLoss, status.Code(err))
	s.True(errors.IsMalformedResponse(errors.FromGRPCError(err)))
}

func (s *HandlerTestSuite) TestRollDice() {
	s.mockDice.EXPECT().
		Roll(gomock.Any(), &dice.RollInput{Notation: "2d6"}).
		Return(&dice.RollOutput{Roll: &dice.Roll{
			RollID:   "roll_1",
			Notation: "2d6",
			Dice:     []int{2, 5},
			Total:    7,
			Output:   "2d6: [2, 5] = 7",
		}}, nil)

	resp, err := s.client.RollDice(s.ctx, s.request(map[string]any{"notation": "2d6"}))
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("2d6: [2, 5] = 7", got["output"])
	s.Equal(float64(7), got["total"])
	s.Equal([]any{float64(2), float64(5)}, got["dice"])
}

func (s *HandlerTestSuite) TestRollDice_MissingNotation() {
	_, err := s.client.RollDice(s.ctx, s.request(map[string]any{}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestPanels() {
	s.mockPanel.EXPECT().
		ActivatePanel(gomock.Any(), &panel.ActivatePanelInput{Session: "abc", Panel: "effects"}).
		Return(&panel.ActivatePanelOutput{Panel: "effects"}, nil)
	s.mockPanel.EXPECT().
		InitialPanel(gomock.Any(), &panel.InitialPanelInput{Session: "abc", Panels: []string{"stats", "effects"}}).
		Return(&panel.InitialPanelOutput{Panel: "effects", Source: panel.SourceStored}, nil)

	resp, err := s.client.ActivatePanel(s.ctx, s.request(map[string]any{"session": "abc", "panel": "effects"}))
	s.Require().NoError(err)
	s.Equal("effects", resp.AsMap()["panel"])

	resp, err = s.client.InitialPanel(s.ctx, s.request(map[string]any{
		"session": "abc",
		"panels":  []any{"stats", "effects"},
	}))
	s.Require().NoError(err)
	s.Equal(map[string]any{"panel": "effects", "source": "stored"}, resp.AsMap())
}

func (s *HandlerTestSuite) TestListBindings() {
	s.mockSearch.EXPECT().
		ListBindings(gomock.Any()).
		Return(&search.ListBindingsOutput{Bindings: autocomplete.DefaultBindings()[:2]}, nil)

	resp, err := s.client.ListBindings(s.ctx, s.request(map[string]any{}))
	s.Require().NoError(err)
	s.Equal([]any{
		map[string]any{"name": "item", "endpoint": "/api/item/", "min_length": float64(2)},
		map[string]any{"name": "effect", "endpoint": "/api/effect/", "min_length": float64(2)},
	}, resp.AsMap()["bindings"])
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
