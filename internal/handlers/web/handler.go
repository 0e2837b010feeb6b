// Package web serves the JSON endpoints called by the page scripts:
// autocomplete, combat simulation, the dice modal and panel persistence.
package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
	"github.com/debnet/fallout/internal/orchestrators/combat"
	"github.com/debnet/fallout/internal/orchestrators/dice"
	"github.com/debnet/fallout/internal/orchestrators/panel"
	"github.com/debnet/fallout/internal/orchestrators/search"
)

const (
	// SessionCookie is the Django session cookie
	SessionCookie = "sessionid"

	maxRequestBody = 1 << 20
)

// HandlerConfig holds dependencies for the web handler
type HandlerConfig struct {
	SearchService search.Service
	CombatService combat.Service
	DiceService   dice.Service
	PanelService  panel.Service
	// DiceShortcut is the key combination opening the roll modal
	DiceShortcut string
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

// Handler serves the browser API
type Handler struct {
	searchService search.Service
	combatService combat.Service
	diceService   dice.Service
	panelService  panel.Service
	diceShortcut  string
}

// NewHandler creates a new web handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		searchService: cfg.SearchService,
		combatService: cfg.CombatService,
		diceService:   cfg.DiceService,
		panelService:  cfg.PanelService,
		diceShortcut:  cfg.DiceShortcut,
	}, nil
}

// Routes returns the handler's mux wrapped with request logging
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /ui/config", h.uiConfig)
	mux.HandleFunc("GET /autocomplete/{binding}", h.autocomplete)
	mux.HandleFunc("POST /simulation/", h.simulate)
	mux.HandleFunc("POST /dice/roll", h.rollDice)
	mux.HandleFunc("GET /panels/active", h.initialPanel)
	mux.HandleFunc("PUT /panels/active", h.activatePanel)

	return withLogging(mux)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type bindingConfig struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	MinLength int    `json:"min_length"`
}

type uiConfigResponse struct {
	DiceShortcut string          `json:"dice_shortcut"`
	Autocomplete []bindingConfig `json:"autocomplete"`
}

func (h *Handler) uiConfig(w http.ResponseWriter, r *http.Request) {
	out, err := h.searchService.ListBindings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := uiConfigResponse{
		DiceShortcut: h.diceShortcut,
		Autocomplete: make([]bindingConfig, 0, len(out.Bindings)),
	}
	for _, b := range out.Bindings {
		resp.Autocomplete = append(resp.Autocomplete, bindingConfig{
			Name:      b.Name,
			URL:       "/autocomplete/" + b.Name,
			MinLength: b.MinLength,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) autocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var seq uint64
	if raw := q.Get("seq"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, errors.InvalidArgumentf("invalid seq %q", raw))
			return
		}
		seq = n
	}

	out, err := h.searchService.Autocomplete(r.Context(), &search.AutocompleteInput{
		Binding: r.PathValue("binding"),
		Term:    q.Get("term"),
		Widget:  q.Get("widget"),
		Seq:     seq,
		Session: sessionOf(r),
		Header:  r.Header.Clone(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	switch {
	case out.Stale:
		writeJSON(w, http.StatusConflict, map[string]bool{"stale": true})
	case out.Notice != "":
		writeJSON(w, http.StatusBadGateway, map[string]string{"notice": out.Notice})
	default:
		writeJSON(w, http.StatusOK, out.Options)
	}
}

type jsonField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.combatService.Simulate(r.Context(), &combat.SimulateInput{
		Fields: fields,
		Header: r.Header.Clone(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if !out.ShowAlert {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"alert": out.Alert})
}

// readFields reads an urlencoded form body in document order, or a JSON list
// of {name, value}
func readFields(w http.ResponseWriter, r *http.Request) ([]formdata.Field, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		return nil, errors.InvalidArgumentf("failed to read body: %v", err)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var items []jsonField
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, errors.InvalidArgumentf("invalid field list: %v", err)
		}
		fields := make([]formdata.Field, len(items))
		for i, item := range items {
			fields[i] = formdata.Field{Name: item.Name, Value: item.Value}
		}
		return fields, nil
	}

	fields, err := formdata.FieldsFromQuery(string(body))
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid form body: %v", err)
	}
	return fields, nil
}

type rollRequest struct {
	Notation string `json:"notation"`
}

type rollResponse struct {
	RollID   string `json:"roll_id"`
	Notation string `json:"notation"`
	Dice     []int  `json:"dice"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
	Output   string `json:"output"`
}

func (h *Handler) rollDice(w http.ResponseWriter, r *http.Request) {
	var req rollRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, errors.InvalidArgumentf("invalid request: %v", err))
		return
	}

	out, err := h.diceService.Roll(r.Context(), &dice.RollInput{Notation: req.Notation})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rollResponse{
		RollID:   out.Roll.RollID,
		Notation: out.Roll.Notation,
		Dice:     out.Roll.Dice,
		Modifier: out.Roll.Modifier,
		Total:    out.Roll.Total,
		Output:   out.Roll.Output,
	})
}

type panelResponse struct {
	Panel  string `json:"panel"`
	Source string `json:"source,omitempty"`
}

func (h *Handler) initialPanel(w http.ResponseWriter, r *http.Request) {
	out, err := h.panelService.InitialPanel(r.Context(), &panel.InitialPanelInput{
		Session: sessionOf(r),
		Panels:  r.URL.Query()["panel"],
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, panelResponse{Panel: out.Panel, Source: out.Source})
}

func (h *Handler) activatePanel(w http.ResponseWriter, r *http.Request) {
	var req panelResponse
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, errors.InvalidArgumentf("invalid request: %v", err))
		return
	}

	out, err := h.panelService.ActivatePanel(r.Context(), &panel.ActivatePanelInput{
		Session: sessionOf(r),
		Panel:   req.Panel,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, panelResponse{Panel: out.Panel})
}

// sessionOf reads the session from the query string, then the Django cookie
func sessionOf(r *http.Request) string {
	if s := strings.TrimSpace(r.URL.Query().Get("session")); s != "" {
		return s
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeInternal {
		slog.Error("Request failed", "error", err)
	}
	writeJSON(w, code.HTTPStatus(), errorResponse{
		Error:   code.String(),
		Message: errors.GetMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
