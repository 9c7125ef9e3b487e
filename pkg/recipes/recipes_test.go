package recipes_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/qflow/pkg/adapters/memory"
	"github.com/aretw0/qflow/pkg/recipes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, names ...string) (*memory.Platform, []string) {
	t.Helper()
	p := memory.NewPlatform()
	ids := make([]string, 0, len(names))
	for _, n := range names {
		id, err := p.CreateSurvey(context.Background(), n)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return p, ids
}

func TestDeleteSurveysByName(t *testing.T) {
	ctx := context.Background()
	p, ids := seed(t, "Test Survey", "Keep", "Test Survey")

	var asked int
	var printed bytes.Buffer
	dir := t.TempDir()
	deleted, err := recipes.DeleteSurveysByName(ctx, p, "Test Survey", recipes.DeleteOptions{
		Confirm: func(n int) bool { asked = n; return true },
		Print:   &printed,
		SaveDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, asked)
	assert.Equal(t, []string{ids[0], ids[2]}, deleted)

	left, err := p.ListSurveys(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Keep", left[0].Name)

	assert.Contains(t, printed.String(), `"SurveyName": "Test Survey"`)
	_, err = os.Stat(filepath.Join(dir, ids[0]+".json"))
	assert.NoError(t, err)
}

func TestDeleteSurveysByName_Declined(t *testing.T) {
	ctx := context.Background()
	p, _ := seed(t, "x")

	_, err := recipes.DeleteSurveysByName(ctx, p, "x", recipes.DeleteOptions{
		Confirm: func(int) bool { return false },
	})
	assert.ErrorIs(t, err, recipes.ErrAborted)

	_, err = recipes.DeleteSurveysByName(ctx, p, "x", recipes.DeleteOptions{})
	assert.ErrorIs(t, err, recipes.ErrAborted, "no confirmation means no deletion")

	left, _ := p.ListSurveys(ctx)
	assert.Len(t, left, 1)
}

func TestDeleteSurveysByName_NoMatch(t *testing.T) {
	p, _ := seed(t, "x")
	deleted, err := recipes.DeleteSurveysByName(context.Background(), p, "y", recipes.DeleteOptions{
		Confirm: func(int) bool { t.Fatal("must not ask"); return false },
	})
	assert.NoError(t, err)
	assert.Empty(t, deleted)
}

func ptr(s string) *string { return &s }

func TestStyle_Options(t *testing.T) {
	tests := []struct {
		name  string
		style recipes.Style
		want  map[string]any
	}{
		{"empty", recipes.Style{}, nil},
		{"script only", recipes.Style{Script: ptr("go()")}, map[string]any{
			"Footer": "\n\n<script>\ngo()\n</script>\n",
		}},
		{"footer and script", recipes.Style{Footer: ptr("<p>f</p>"), Script: ptr("go()")}, map[string]any{
			"Footer": "<p>f</p>\n\n<script>\ngo()\n</script>\n",
		}},
		{"header and css", recipes.Style{Header: ptr("<h1/>"), CustomCSS: ptr("a{}")}, map[string]any{
			"Header":       "<h1/>",
			"CustomStyles": map[string]any{"customCSS": "a{}"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.style.Options()
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyleSurvey(t *testing.T) {
	ctx := context.Background()
	p, ids := seed(t, "s")
	require.NoError(t, p.UpdateSurveyOptions(ctx, ids[0], map[string]any{"Header": "old", "BackButton": "true"}))

	require.NoError(t, recipes.StyleSurvey(ctx, p, ids[0], recipes.Style{Header: ptr("new")}))

	opts, err := p.GetSurveyOptions(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Header": "new", "BackButton": "true"}, opts)
}
