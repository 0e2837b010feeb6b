package v1

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/clients/falloutapi"
	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
	"github.com/debnet/fallout/internal/orchestrators/combat"
	"github.com/debnet/fallout/internal/orchestrators/dice"
	"github.com/debnet/fallout/internal/orchestrators/panel"
	"github.com/debnet/fallout/internal/orchestrators/search"
	"github.com/debnet/fallout/internal/simulation"
)

// HandlerConfig holds dependencies for the UI handler
type HandlerConfig struct {
	SearchService search.Service
	CombatService combat.Service
	DiceService   dice.Service
	PanelService  panel.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SearchService == nil {
		vb.RequiredField("SearchService")
	}
	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.PanelService == nil {
		vb.RequiredField("PanelService")
	}

	return vb.Build()
}

// Handler implements the UI gRPC service
type Handler struct {
	searchService search.Service
	combatService combat.Service
	diceService   dice.Service
	panelService  panel.Service
}

// NewHandler creates a new UI handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		searchService: cfg.SearchService,
		combatService: cfg.CombatService,
		diceService:   cfg.DiceService,
		panelService:  cfg.PanelService,
	}, nil
}

var _ UIServiceServer = (*Handler)(nil)

// Autocomplete answers {binding, term, session?, widget?, seq?} with
// {request_id, options, notice, stale}
func (h *Handler) Autocomplete(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	binding := stringField(req, "binding")
	if binding == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("binding is required"))
	}

	seq := req.GetFields()["seq"].GetNumberValue()
	if seq < 0 || seq != math.Trunc(seq) {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("invalid seq %v", seq))
	}

	out, err := h.searchService.Autocomplete(ctx, &search.AutocompleteInput{
		Binding: binding,
		Term:    stringField(req, "term"),
		Session: stringField(req, "session"),
		Widget:  stringField(req, "widget"),
		Seq:     uint64(seq),
		Header:  forwardedHeader(ctx),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return newStruct(map[string]any{
		"request_id": out.RequestID,
		"options":    optionValues(out.Options),
		"notice":     out.Notice,
		"stale":      out.Stale,
	})
}

// Simulate answers {fields: [{name, value}]} with {alert, show_alert, kind}
func (h *Handler) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields, err := fieldList(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.combatService.Simulate(ctx, &combat.SimulateInput{
		Fields: fields,
		Header: forwardedHeader(ctx),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return newStruct(map[string]any{
		"request_id": out.RequestID,
		"alert":      out.Alert,
		"show_alert": out.ShowAlert,
		"kind":       simulation.Kind(out.Result),
	})
}

// RollDice answers {notation} with the roll
func (h *Handler) RollDice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	notation := stringField(req, "notation")
	if notation == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	out, err := h.diceService.Roll(ctx, &dice.RollInput{Notation: notation})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	faces := make([]any, len(out.Roll.Dice))
	for i, f := range out.Roll.Dice {
		faces[i] = f
	}

	return newStruct(map[string]any{
		"roll_id":  out.Roll.RollID,
		"notation": out.Roll.Notation,
		"dice":     faces,
		"modifier": out.Roll.Modifier,
		"total":    out.Roll.Total,
		"output":   out.Roll.Output,
	})
}

// ActivatePanel answers {session, panel} with {panel}
func (h *Handler) ActivatePanel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.panelService.ActivatePanel(ctx, &panel.ActivatePanelInput{
		Session: stringField(req, "session"),
		Panel:   stringField(req, "panel"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return newStruct(map[string]any{"panel": out.Panel})
}

// InitialPanel answers {session, panels} with {panel, source}
func (h *Handler) InitialPanel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.panelService.InitialPanel(ctx, &panel.InitialPanelInput{
		Session: stringField(req, "session"),
		Panels:  stringList(req, "panels"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return newStruct(map[string]any{
		"panel":  out.Panel,
		"source": out.Source,
	})
}

// ListBindings answers with {bindings: [{name, endpoint, min_length}]}
func (h *Handler) ListBindings(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.searchService.ListBindings(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	bindings := make([]any, len(out.Bindings))
	for i, b := range out.Bindings {
		bindings[i] = map[string]any{
			"name":       b.Name,
			"endpoint":   b.Endpoint,
			"min_length": b.MinLength,
		}
	}
	return newStruct(map[string]any{"bindings": bindings})
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func stringList(req *structpb.Struct, name string) []string {
	values := req.GetFields()[name].GetListValue().GetValues()
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.GetStringValue())
	}
	return out
}

func fieldList(req *structpb.Struct) ([]formdata.Field, error) {
	values := req.GetFields()["fields"].GetListValue().GetValues()
	fields := make([]formdata.Field, 0, len(values))
	for i, v := range values {
		item := v.GetStructValue()
		if item == nil {
			return nil, errors.InvalidArgumentf("fields[%d] must be an object", i)
		}
		name := stringField(item, "name")
		if name == "" {
			return nil, errors.InvalidArgumentf("fields[%d].name is required", i)
		}
		fields = append(fields, formdata.Field{Name: name, Value: stringField(item, "value")})
	}
	return fields, nil
}

func optionValues(options []autocomplete.Option) []any {
	out := make([]any, len(options))
	for i, o := range options {
		out[i] = map[string]any{
			"value": o.Value,
			"id":    plainValue(o.ID),
		}
	}
	return out
}

// maxExactInt is the largest magnitude a structpb number holds exactly
const maxExactInt = 1 << 53

// plainValue converts decoded JSON numbers for structpb. Integers a double
// cannot hold exactly are sent as their decimal string.
func plainValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		if i > maxExactInt || i < -maxExactInt {
			return n.String()
		}
		return i
	}
	if strings.ContainsAny(n.String(), ".eE") {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return n.String()
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return s, nil
}

// forwardedHeader rebuilds the browser headers sent as gRPC metadata
func forwardedHeader(ctx context.Context) http.Header {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	header := http.Header{}
	for _, name := range falloutapi.ForwardedHeaders {
		for _, v := range md.Get(name) {
			header.Add(name, v)
		}
	}
	if len(header) == 0 {
		return nil
	}
	return header
}
