package qualtrics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/qflow/pkg/ports"
)

// DefaultUserAgent identifies the library to the platform operators.
const DefaultUserAgent = "user of library github:aretw0/qflow"

var (
	_ ports.SurveyAPI   = (*Client)(nil)
	_ ports.SurveyAdmin = (*Client)(nil)
	_ ports.Linker      = (*Client)(nil)
)

// Observer receives one call per completed request. Route is the endpoint
// template (IDs replaced by placeholders). Code is 0 on transport errors.
type Observer interface {
	ObserveRequest(method, route string, code int, elapsed time.Duration)
}

// Client talks to one data center with one API token.
type Client struct {
	site      string
	apiURL    string
	token     string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
	observer  Observer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another site root, e.g. a mock server.
// The API lives under "<url>/API/v3/".
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.site = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent sets the user-agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger enables debug logging of every request.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver reports request counts and latencies, e.g. to metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New creates a client for https://{dataCenter}.qualtrics.com.
func New(token, dataCenter string, opts ...Option) *Client {
	c := &Client{
		site:      fmt.Sprintf("https://%s.qualtrics.com", dataCenter),
		token:     token,
		userAgent: DefaultUserAgent,
		http:      http.DefaultClient,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.apiURL = c.site + "/API/v3/"
	return c
}

// EditURL links to the web editor of a survey.
func (c *Client) EditURL(surveyID string) string {
	return fmt.Sprintf("%s/survey-builder/%s/edit", c.site, surveyID)
}

// PreviewURL links to a preview of a survey.
func (c *Client) PreviewURL(surveyID string) string {
	return fmt.Sprintf("%s/jfe/preview/%s", c.site, surveyID)
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Meta   struct {
		HTTPStatus string `json:"httpStatus"`
		Error      struct {
			ErrorMessage string `json:"errorMessage"`
			ErrorCode    string `json:"errorCode"`
		} `json:"error"`
	} `json:"meta"`
}

// request describes one API call. endpoint is relative to the API root
// unless absolute is set; route is its template, used for metrics.
type request struct {
	method   string
	endpoint string
	route    string
	body     any
	absolute bool
}

// do sends the request and decodes the "result" field into out (when out
// is not nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	url := c.apiURL + req.endpoint
	if req.absolute {
		url = req.endpoint
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", req.method, req.endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", req.method, req.endpoint, err)
	}
	hreq.Header.Set("x-api-token", c.token)
	hreq.Header.Set("user-agent", c.userAgent)
	hreq.Header.Set("content-type", "application/json")
	hreq.Header.Set("accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(hreq)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(req, 0, elapsed)
		return fmt.Errorf("%s %s: %w", req.method, req.endpoint, err)
	}
	defer resp.Body.Close()
	c.observe(req, resp.StatusCode, elapsed)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s: %w", req.method, req.endpoint, err)
	}
	c.logger.Debug("qualtrics request",
		"method", req.method,
		"endpoint", req.endpoint,
		"status", resp.StatusCode,
		"duration", elapsed,
		"response", string(raw),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:     req.method,
			Endpoint:   req.endpoint,
			StatusCode: resp.StatusCode,
		}
		if decodeErr == nil {
			apiErr.Message = env.Meta.Error.ErrorMessage
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode %s %s: %w", req.method, req.endpoint, decodeErr)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode result of %s %s: %w", req.method, req.endpoint, err)
	}
	return nil
}

func (c *Client) observe(req request, code int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(req.method, req.route, code, elapsed)
	}
}

func (c *Client) get(ctx context.Context, endpoint, route string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, endpoint: endpoint, route: route}, out)
}

func (c *Client) post(ctx context.Context, endpoint, route string, body, out any) error {
	return c.do(ctx, request{method: http.MethodPost, endpoint: endpoint, route: route, body: body}, out)
}

func (c *Client) put(ctx context.Context, endpoint, route string, body any) error {
	return c.do(ctx, request{method: http.MethodPut, endpoint: endpoint, route: route, body: body}, nil)
}

func (c *Client) delete(ctx context.Context, endpoint, route string) error {
	return c.do(ctx, request{method: http.MethodDelete, endpoint: endpoint, route: route}, nil)
}
