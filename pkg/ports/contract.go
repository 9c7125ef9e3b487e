package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSurveyAPIContract runs a suite of tests to verify that a SurveyAPI
// implementation adheres to the defined interface contract. When api also
// implements SurveyAdmin, the admin calls are checked too.
func RunSurveyAPIContract(t *testing.T, api SurveyAPI) {
	ctx := context.Background()
	name := "contract-survey-" + time.Now().Format("20060102150405")

	surveyID, err := api.CreateSurvey(ctx, name)
	require.NoError(t, err, "CreateSurvey should not return error")
	require.NotEmpty(t, surveyID)

	t.Run("Options", func(t *testing.T) {
		err := api.UpdateSurveyOptions(ctx, surveyID, map[string]any{"Header": "<h1>hi</h1>"})
		require.NoError(t, err)

		err = PartialUpdateSurveyOptions(ctx, api, surveyID, map[string]any{"Footer": "<p>bye</p>"})
		require.NoError(t, err)

		options, err := api.GetSurveyOptions(ctx, surveyID)
		require.NoError(t, err)
		assert.Equal(t, "<h1>hi</h1>", options["Header"])
		assert.Equal(t, "<p>bye</p>", options["Footer"])
	})

	t.Run("Options of unknown survey", func(t *testing.T) {
		_, err := api.GetSurveyOptions(ctx, "SV_doesnotexist")
		assert.ErrorIs(t, err, domain.ErrSurveyNotFound)
	})

	t.Run("Blocks and questions", func(t *testing.T) {
		a, err := api.CreateBlock(ctx, surveyID, "A")
		require.NoError(t, err)
		b, err := api.CreateBlock(ctx, surveyID, "B")
		require.NoError(t, err)
		assert.NotEqual(t, a, b, "block IDs must be distinct")

		q1, err := api.CreateQuestion(ctx, surveyID, a, map[string]any{"QuestionType": "Timing", "DataExportTag": "T1"})
		require.NoError(t, err)
		require.NoError(t, api.CreatePageBreak(ctx, surveyID, a))
		q2, err := api.CreateQuestion(ctx, surveyID, "", map[string]any{"QuestionType": "Timing", "DataExportTag": "T2"})
		require.NoError(t, err)
		require.NoError(t, api.CreatePageBreak(ctx, surveyID, ""))
		assert.NotEqual(t, q1, q2, "question IDs must be distinct")
	})

	t.Run("Flow", func(t *testing.T) {
		blk := domain.NewBlock("flow block")
		blockID, err := api.CreateBlock(ctx, surveyID, blk.Description)
		require.NoError(t, err)

		root := flow.NewRoot(flow.NewBlockRef(blk), flow.NewTerminator())
		ids := flow.CollectDistinctBlocks(root)
		ids.Set(blk, blockID)
		doc, err := root.Finalize(ids)
		require.NoError(t, err)

		assert.NoError(t, api.UpdateFlow(ctx, surveyID, doc))
	})

	admin, ok := api.(SurveyAdmin)
	if !ok {
		return
	}

	t.Run("Admin", func(t *testing.T) {
		surveys, err := admin.ListSurveys(ctx)
		require.NoError(t, err)
		found := false
		for _, s := range surveys {
			if s.ID == surveyID {
				found = true
				assert.Equal(t, name, s.Name)
			}
		}
		assert.True(t, found, "ListSurveys should include the created survey")

		def, err := admin.GetSurvey(ctx, surveyID)
		require.NoError(t, err)
		assert.Equal(t, name, def["SurveyName"])

		require.NoError(t, admin.DeleteSurvey(ctx, surveyID))
		_, err = admin.GetSurvey(ctx, surveyID)
		assert.ErrorIs(t, err, domain.ErrSurveyNotFound, "GetSurvey after Delete should return ErrSurveyNotFound")
	})
}
