package qflow

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/qflow/internal/upload"
	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/aretw0/qflow/pkg/observability"
	"github.com/aretw0/qflow/pkg/ports"
	"github.com/aretw0/qflow/pkg/survey"
)

// Client is the high-level entry point of the library. It uploads surveys
// built with the survey, flow and question packages to a platform.
type Client struct {
	uploader *upload.Uploader
	api      ports.SurveyAPI
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	progress upload.Progress
	linker   ports.Linker
}

// Progress receives one step per uploaded block or question.
type Progress = upload.Progress

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Client) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithMetrics counts upload events in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.hooks = c.hooks.Merge(m.Hooks())
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithProgress reports upload progress, e.g. to a terminal bar.
func WithProgress(p Progress) Option {
	return func(c *Client) {
		c.progress = p
	}
}

// WithLinker sets where edit and preview links come from.
func WithLinker(l ports.Linker) Option {
	return func(c *Client) {
		c.linker = l
	}
}

// New creates a Client that uploads through api.
func New(api ports.SurveyAPI, opts ...Option) *Client {
	c := &Client{api: api}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	uploadOpts := []upload.Option{
		upload.WithLogger(c.logger),
		upload.WithHooks(c.hooks),
	}
	if c.progress != nil {
		uploadOpts = append(uploadOpts, upload.WithProgress(c.progress))
	}
	if c.linker != nil {
		uploadOpts = append(uploadOpts, upload.WithLinker(c.linker))
	}
	c.uploader = upload.New(api, uploadOpts...)
	return c
}

// Create uploads s and returns the new survey ID. On failure the ID of the
// partially created survey, if any, is returned with the error.
func (c *Client) Create(ctx context.Context, s survey.Survey) (string, error) {
	return c.uploader.Create(ctx, s)
}

// Compile returns the flow document s would upload, with placeholder block
// IDs, without contacting the platform.
func Compile(s survey.Survey) (*flow.RootElement, error) {
	return upload.Compile(s)
}
