package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/qflow"
	"github.com/aretw0/qflow/internal/presentation/tui"
	"github.com/aretw0/qflow/pkg/adapters/file"
	qhttp "github.com/aretw0/qflow/pkg/adapters/http"
	"github.com/aretw0/qflow/pkg/adapters/memory"
	"github.com/aretw0/qflow/pkg/observability"
	"github.com/aretw0/qflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Upload creates the definition at path through api and returns the new
// survey ID. A partial ID is returned with the error when the upload stops
// midway.
func Upload(ctx context.Context, api ports.SurveyAPI, path string, opts ...qflow.Option) (string, error) {
	s, err := file.LoadSurvey(path)
	if err != nil {
		return "", err
	}
	return qflow.New(api, opts...).Create(ctx, s)
}

// WriteMetrics writes the families gathered from g to path in the text
// exposition format.
func WriteMetrics(path string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return f.Close()
}

// MockOptions configures ServeMock.
type MockOptions struct {
	Token   string
	Version string
	Logger  *slog.Logger
	Out     io.Writer
}

// ServeMock serves an in-memory survey platform on ln until ctx is done,
// then shuts down gracefully.
func ServeMock(ctx context.Context, ln net.Listener, opts MockOptions) error {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	handlerOpts := []qhttp.Option{
		qhttp.WithToken(opts.Token),
		qhttp.WithMetrics(m, reg),
	}
	if opts.Logger != nil {
		handlerOpts = append(handlerOpts, qhttp.WithLogger(opts.Logger))
	}
	srv := &http.Server{
		Handler:           qhttp.NewHandler(memory.NewPlatform(), handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tui.PrintBanner(opts.Out, opts.Version)
	PrintSystemMessage(opts.Out, "Mock API listening on http://%s/API/v3/", ln.Addr())

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		PrintSystemMessage(opts.Out, "Mock API stopped.")
		return nil
	}
}
