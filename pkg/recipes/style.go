package recipes

import (
	"context"

	"github.com/aretw0/qflow/pkg/ports"
	"github.com/aretw0/qflow/pkg/survey"
)

// Style is a patch of the global look of a survey. Nil fields are left
// unchanged on the platform.
type Style struct {
	Header    *string
	Footer    *string
	CustomCSS *string
	// Script is appended to the footer in a script element. The footer is
	// replaced even when Footer is nil.
	Script *string
}

// Options returns the survey options the style sets.
func (s Style) Options() map[string]any {
	var b survey.Base
	footer := s.Footer
	if s.Script != nil {
		f := ""
		if footer != nil {
			f = *footer
		}
		f += "\n\n<script>\n" + *s.Script + "\n</script>\n"
		footer = &f
	}
	if footer != nil {
		b.SetFooterHTML(*footer)
	}
	if s.Header != nil {
		b.SetHeaderHTML(*s.Header)
	}
	if s.CustomCSS != nil {
		b.SetCustomCSS(*s.CustomCSS)
	}
	return b.Options
}

// StyleSurvey applies style to an existing survey with a partial options
// update, keeping every option the style does not name.
func StyleSurvey(ctx context.Context, api ports.SurveyAPI, surveyID string, style Style) error {
	opts := style.Options()
	if len(opts) == 0 {
		return nil
	}
	return ports.PartialUpdateSurveyOptions(ctx, api, surveyID, opts)
}
