package survey_test

import (
	"testing"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/aretw0/qflow/pkg/question"
	"github.com/aretw0/qflow/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_Options(t *testing.T) {
	s := survey.NewBasic("")
	assert.Equal(t, survey.DefaultName, s.Name)

	s.SetShowBackButton(true)
	s.SetProgressBarDisplay("VerboseText")
	s.SetCustomCSS("body{}")
	s.SetHeaderHTML("<h1>hi</h1>")
	s.SetFooterHTML("<p>bye</p>")
	s.SetExternalCSSURL("https://example.com/a.css")
	s.SetOptions(map[string]any{"Header": "<h2>override</h2>", "Custom": 1})

	assert.Equal(t, map[string]any{
		"BackButton":         "true",
		"ProgressBarDisplay": "VerboseText",
		"CustomStyles":       map[string]any{"customCSS": "body{}"},
		"Header":             "<h2>override</h2>",
		"Footer":             "<p>bye</p>",
		"ExternalCSS":        "https://example.com/a.css",
		"Custom":             1,
	}, s.Header().Options)

	s.SetShowBackButton(false)
	assert.Equal(t, "false", s.Options["BackButton"])
}

func TestBasicSurvey_Plan(t *testing.T) {
	s := survey.NewBasic("basic", question.Timing("T1"))
	s.AppendPageBreak()
	s.AppendQuestion(question.TextGraphic("hi", ""))

	plan, err := s.Plan()
	require.NoError(t, err)
	require.Len(t, plan.Blocks, 1)
	assert.True(t, plan.Blocks[0].UseDefault)
	assert.Equal(t, 3, plan.Questions())
	assert.Nil(t, plan.Root)
}

func TestBlockSurvey_Plan(t *testing.T) {
	a, b := domain.NewBlock("a"), domain.NewBlock("b")
	s := survey.NewBlockSurvey("blocks", a)
	s.AppendBlock(b)

	plan, err := s.Plan()
	require.NoError(t, err)
	require.Len(t, plan.Blocks, 2)
	assert.Same(t, a, plan.Blocks[0].Block)
	assert.Same(t, b, plan.Blocks[1].Block)
	assert.False(t, plan.Blocks[0].UseDefault)
}

func TestFlowSurvey_PlanDeduplicates(t *testing.T) {
	a := domain.NewBlock("a", question.Timing("T1"), domain.PageBreak())
	b := domain.NewBlock("b", question.Timing("T2"))

	s := survey.NewFlowSurvey("flow")
	s.AppendBlock(a)
	s.AppendFlow(flow.NewRandomSubset(1, true, flow.NewBlockRef(b), flow.NewBlockRef(a)))
	s.AppendFlow(flow.NewTerminator())

	plan, err := s.Plan()
	require.NoError(t, err)
	require.NotNil(t, plan.Root)
	require.Len(t, plan.Blocks, 2)
	assert.Same(t, a, plan.Blocks[0].Block)
	assert.Same(t, b, plan.Blocks[1].Block)
	assert.Equal(t, 3, plan.Questions())
	assert.Equal(t, 2, plan.IDs.Len())
	assert.Len(t, plan.Root.Children(), 3)
}

func TestFlowSurvey_NilBlock(t *testing.T) {
	s := survey.NewFlowSurvey("flow")
	s.AppendBlock(nil)

	_, err := s.Plan()
	assert.ErrorIs(t, err, flow.ErrBlockNotRegistered)
}
