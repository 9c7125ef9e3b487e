package ports

import (
	"context"
	"maps"

	"github.com/aretw0/qflow/pkg/domain"
)

// SurveyAPI is the synchronous survey-definitions surface used by uploads.
// An empty blockID addresses the survey's default block.
type SurveyAPI interface {
	// CreateSurvey creates an empty survey and returns its ID.
	CreateSurvey(ctx context.Context, name string) (string, error)

	// GetSurveyOptions returns the global options of a survey.
	// Returns domain.ErrSurveyNotFound if the survey does not exist.
	GetSurveyOptions(ctx context.Context, surveyID string) (map[string]any, error)

	// UpdateSurveyOptions replaces the global options of a survey.
	UpdateSurveyOptions(ctx context.Context, surveyID string, options map[string]any) error

	// CreateBlock creates an empty standard block and returns its ID.
	CreateBlock(ctx context.Context, surveyID, description string) (string, error)

	// CreateQuestion appends a question to a block and returns its ID.
	CreateQuestion(ctx context.Context, surveyID, blockID string, data map[string]any) (string, error)

	// CreatePageBreak appends a page break to a block.
	CreatePageBreak(ctx context.Context, surveyID, blockID string) error

	// UpdateFlow replaces the flow of a survey with a compiled document.
	UpdateFlow(ctx context.Context, surveyID string, doc any) error
}

// SurveyAdmin manages whole surveys.
type SurveyAdmin interface {
	ListSurveys(ctx context.Context) ([]domain.SurveySummary, error)

	// GetSurvey returns the full survey definition.
	// Returns domain.ErrSurveyNotFound if the survey does not exist.
	GetSurvey(ctx context.Context, surveyID string) (map[string]any, error)

	// DeleteSurvey deletes a survey together with its responses.
	DeleteSurvey(ctx context.Context, surveyID string) error
}

// Linker computes web links for a survey without contacting the platform.
type Linker interface {
	EditURL(surveyID string) string
	PreviewURL(surveyID string) string
}

// PartialUpdateSurveyOptions merges options into the current ones, keeping
// keys that options does not name.
func PartialUpdateSurveyOptions(ctx context.Context, api SurveyAPI, surveyID string, options map[string]any) error {
	current, err := api.GetSurveyOptions(ctx, surveyID)
	if err != nil {
		return err
	}
	merged := make(map[string]any, len(current)+len(options))
	maps.Copy(merged, current)
	maps.Copy(merged, options)
	return api.UpdateSurveyOptions(ctx, surveyID, merged)
}
