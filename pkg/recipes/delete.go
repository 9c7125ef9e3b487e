package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/qflow/pkg/ports"
)

// ErrAborted is returned when the confirmation callback declines.
var ErrAborted = errors.New("aborted by user")

// DeleteOptions configures DeleteSurveysByName.
type DeleteOptions struct {
	// Confirm is asked once, with the matching count, before anything is
	// deleted. A nil Confirm declines: deletion also removes responses.
	Confirm func(count int) bool
	// Print, if set, receives each deleted survey definition as JSON.
	Print io.Writer
	// SaveDir, if set, must be an existing directory. Each deleted survey is
	// saved there as <id>.json.
	SaveDir string
	// Progress, if set, is advanced once per deleted survey.
	Progress interface {
		Start(total int, label string)
		Advance(n int)
		Finish()
	}
}

// DeleteSurveysByName deletes every survey whose name equals name exactly
// and returns the deleted IDs. It stops at the first failure.
func DeleteSurveysByName(ctx context.Context, admin ports.SurveyAdmin, name string, opts DeleteOptions) ([]string, error) {
	all, err := admin.ListSurveys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	var ids []string
	for _, s := range all {
		if s.Name == name {
			ids = append(ids, s.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if opts.Confirm == nil || !opts.Confirm(len(ids)) {
		return nil, ErrAborted
	}

	if opts.Progress != nil {
		opts.Progress.Start(len(ids), "deleting "+name)
		defer opts.Progress.Finish()
	}

	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if opts.Print != nil || opts.SaveDir != "" {
			if err := archive(ctx, admin, id, opts); err != nil {
				return deleted, err
			}
		}
		if err := admin.DeleteSurvey(ctx, id); err != nil {
			return deleted, fmt.Errorf("failed to delete survey %s: %w", id, err)
		}
		deleted = append(deleted, id)
		if opts.Progress != nil {
			opts.Progress.Advance(1)
		}
	}
	return deleted, nil
}

func archive(ctx context.Context, admin ports.SurveyAdmin, id string, opts DeleteOptions) error {
	def, err := admin.GetSurvey(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch survey %s: %w", id, err)
	}
	raw, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode survey %s: %w", id, err)
	}
	if opts.Print != nil {
		if _, err := fmt.Fprintln(opts.Print, string(raw)); err != nil {
			return err
		}
	}
	if opts.SaveDir != "" {
		path := filepath.Join(opts.SaveDir, id+".json")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("failed to save survey %s: %w", id, err)
		}
	}
	return nil
}
