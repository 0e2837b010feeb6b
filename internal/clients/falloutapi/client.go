// Package falloutapi is the client for the Fallout web application: its REST
// search endpoints and the combat simulation endpoint.
package falloutapi

//go:generate mockgen -destination=mock/mock_client.go -package=falloutapimock github.com/debnet/fallout/internal/clients/falloutapi Client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/errors"
	"github.com/debnet/fallout/internal/formdata"
	"github.com/debnet/fallout/internal/simulation"
)

const (
	// SimulationPath is the combat simulation endpoint
	SimulationPath = "/simulation/"

	// DefaultMaxBodySize bounds how much of a response is read
	DefaultMaxBodySize = 4 << 20
)

// ForwardedHeaders are copied from the browser request so the Django
// session and CSRF checks see the player, not this service.
var ForwardedHeaders = []string{"Cookie", "X-CSRFToken", "Authorization", "Accept-Language"}

// Client defines the interface for Fallout API interactions
type Client interface {
	// Search queries a search endpoint and decodes its result envelope
	Search(ctx context.Context, input *SearchInput) (*autocomplete.Envelope, error)

	// Simulate posts a collected form to the simulation endpoint and
	// classifies the response
	Simulate(ctx context.Context, input *SimulateInput) (simulation.Result, error)
}

// SearchInput describes one search request
type SearchInput struct {
	Endpoint string
	Query    url.Values
	Header   http.Header
}

// SimulateInput describes one simulation request
type SimulateInput struct {
	Form   *formdata.Map
	Header http.Header
}

// Config contains configuration options for the API client.
type Config struct {
	// BaseURL of the Fallout application, e.g. http://localhost:8000
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout
	HTTPClient *http.Client
	// MaxBodySize is the largest response accepted, in bytes (optional,
	// defaults to DefaultMaxBodySize)
	MaxBodySize int64
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
	errors.ValidateAbsoluteURL("BaseURL", cfg.BaseURL, vb)
	errors.ValidateNonNegative("HTTPTimeout", cfg.HTTPTimeout, vb)
	errors.ValidateNonNegative("MaxBodySize", cfg.MaxBodySize, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	return nil
}

type client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	maxBodySize int64
}

// New creates a new API client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid base url: %s", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		maxBodySize: cfg.MaxBodySize,
	}, nil
}

func (c *client) Search(ctx context.Context, input *SearchInput) (*autocomplete.Envelope, error) {
	if input == nil || input.Endpoint == "" {
		return nil, errors.InvalidArgument("search endpoint is required")
	}

	u := c.resolve(input.Endpoint)
	u.RawQuery = input.Query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build search request")
	}
	req.Header.Set("Accept", "application/json")
	forward(req.Header, input.Header)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	envelope, err := autocomplete.DecodeEnvelope(body)
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			e.WithMeta("url", u.String())
		}
		return nil, err
	}
	return envelope, nil
}

func (c *client) Simulate(ctx context.Context, input *SimulateInput) (simulation.Result, error) {
	if input == nil || input.Form == nil {
		return nil, errors.InvalidArgument("simulation form is required")
	}

	u := c.resolve(SimulationPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(input.Form.Encode()))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build simulation request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	forward(req.Header, input.Header)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return simulation.Classify(body)
}

// do runs a request and returns the body of a 2xx response. Transport
// failures and other statuses are NetworkErrors; cancellation is reported
// as such so callers can tell a superseded query from an outage.
func (c *client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			if ctxErr == context.DeadlineExceeded {
				return nil, errors.WrapWithCode(err, errors.CodeDeadlineExceeded, "request timed out")
			}
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "request canceled")
		}
		return nil, errors.WrapWithCode(err, errors.CodeNetwork, "request failed").
			WithMeta("url", req.URL.String())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeNetwork, "failed to read response").
			WithMeta("url", req.URL.String())
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, errors.MalformedResponsef("response body exceeds %d bytes", c.maxBodySize).
			WithMeta("url", req.URL.String()).
			WithMeta("limit", c.maxBodySize)
	}

	slog.Debug("Fallout API call",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Networkf("unexpected status %d", resp.StatusCode).
			WithMeta("url", req.URL.String()).
			WithMeta("status", resp.StatusCode)
	}

	return body, nil
}

func (c *client) resolve(path string) *url.URL {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	return &u
}

func forward(dst, src http.Header) {
	for _, name := range ForwardedHeaders {
		for _, v := range src.Values(name) {
			dst.Add(name, v)
		}
	}
}

