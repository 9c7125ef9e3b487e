package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/qflow/internal/logging"
	"github.com/aretw0/qflow/pkg/domain"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger. Warnings and errors are
// always shown; --debug adds request and upload traces.
func NewLogger(debug bool) *slog.Logger {
	return logging.New(logging.Level(debug))
}

// DebugHooks logs every upload event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSurveyCreated: func(ctx context.Context, e *domain.SurveyEvent) {
			logger.Debug("Survey Created", "survey_id", e.SurveyID, "name", e.Name)
		},
		OnOptionsUpdated: func(ctx context.Context, e *domain.SurveyEvent) {
			logger.Debug("Options Updated", "survey_id", e.SurveyID)
		},
		OnBlockCreated: func(ctx context.Context, e *domain.BlockEvent) {
			logger.Debug("Block Created", "block_id", e.BlockID, "description", e.Description, "questions", e.Questions)
		},
		OnQuestionCreated: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.Debug("Question Created", "block_id", e.BlockID, "question_id", e.QuestionID, "kind", e.Kind)
		},
		OnFlowUpdated: func(ctx context.Context, e *domain.FlowEvent) {
			logger.Debug("Flow Updated", "survey_id", e.SurveyID, "count", e.Count)
		},
	}
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but "y" or "yes" declines, including EOF.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Interrupted reports whether err comes from a cancelled context.
func Interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
