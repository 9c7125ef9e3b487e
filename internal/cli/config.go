package cli

import (
	"errors"
	"log/slog"

	"github.com/aretw0/qflow/pkg/adapters/qualtrics"
)

// Environment variables read when the matching flag is empty.
const (
	EnvToken      = "QUALTRICS_API_TOKEN"
	EnvDataCenter = "QUALTRICS_DATA_CENTER"
	EnvBaseURL    = "QUALTRICS_BASE_URL"
)

var (
	ErrMissingToken      = errors.New("missing API token (--token or " + EnvToken + ")")
	ErrMissingDataCenter = errors.New("missing data center (--data-center or " + EnvDataCenter + ")")
)

// Config is the connection configuration shared by the remote commands.
type Config struct {
	Token      string
	DataCenter string
	BaseURL    string
	Debug      bool
}

// WithEnv fills empty fields from the environment.
func (c Config) WithEnv(getenv func(string) string) Config {
	if c.Token == "" {
		c.Token = getenv(EnvToken)
	}
	if c.DataCenter == "" {
		c.DataCenter = getenv(EnvDataCenter)
	}
	if c.BaseURL == "" {
		c.BaseURL = getenv(EnvBaseURL)
	}
	return c
}

// Validate checks that a client can be built. A base URL replaces the
// data center.
func (c Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.DataCenter == "" && c.BaseURL == "" {
		return ErrMissingDataCenter
	}
	return nil
}

// NewClient builds the API client for c. observer may be nil.
func NewClient(c Config, logger *slog.Logger, observer qualtrics.Observer) (*qualtrics.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []qualtrics.Option{qualtrics.WithLogger(logger)}
	if c.BaseURL != "" {
		opts = append(opts, qualtrics.WithBaseURL(c.BaseURL))
	}
	if observer != nil {
		opts = append(opts, qualtrics.WithObserver(observer))
	}
	return qualtrics.New(c.Token, c.DataCenter, opts...), nil
}
