package question_test

import (
	"testing"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextEntry_Sizes(t *testing.T) {
	tests := []struct {
		size     string
		selector string
		wantErr  bool
	}{
		{"", "SL", false},
		{question.SizeSingleLine, "SL", false},
		{question.SizeMultiLine, "ML", false},
		{question.SizeEssay, "ESTB", false},
		{"huge", "", true},
	}

	for _, tt := range tests {
		q, err := question.TextEntry("Q1", "Name?", question.TextEntryOptions{Size: tt.size, ForceResponse: true})
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidQuestion, "size %q", tt.size)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.selector, q.Data["Selector"])
		assert.Equal(t, "TE", q.Type())
		assert.Equal(t, "Q1", q.ExportTag())
		settings := q.Data["Validation"].(map[string]any)["Settings"].(map[string]any)
		assert.Equal(t, "ON", settings["ForceResponse"])
	}
}

func TestMultipleChoice(t *testing.T) {
	q, err := question.MultipleChoice("Q2", "Pick one",
		question.Options("Red", "Blue", question.SelfSpecified),
		question.MultipleChoiceOptions{})
	require.NoError(t, err)

	assert.Equal(t, "SAVR", q.Data["Selector"])
	assert.Equal(t, "TX", q.Data["SubSelector"])
	assert.Equal(t, []int{1, 2, 3}, q.Data["ChoiceOrder"])

	choices := q.Data["Choices"].(map[string]any)
	assert.Equal(t, map[string]any{"Display": "Red"}, choices["1"])
	assert.Equal(t, map[string]any{"Display": "Self-specified", "TextEntry": "true"}, choices["3"])

	q, err = question.MultipleChoice("Q3", "", nil, question.MultipleChoiceOptions{Selection: question.SelectDropdownList})
	require.NoError(t, err)
	assert.Equal(t, "DL", q.Data["Selector"])
	assert.Equal(t, "", q.Data["SubSelector"])

	_, err = question.MultipleChoice("Q4", "", nil, question.MultipleChoiceOptions{Selection: "wheel"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)
}

func TestSlider(t *testing.T) {
	q, err := question.Slider("S1", "Rate", question.SliderOptions{Count: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, q.Data["ChoiceOrder"])
	cfg := q.Data["Configuration"].(map[string]any)
	assert.Equal(t, float64(100), cfg["CSSliderMax"])
	assert.Equal(t, float64(9), cfg["GridLines"])

	q, err = question.Slider("S2", "Rate", question.SliderOptions{Labels: []string{"a"}, Max: 10})
	require.NoError(t, err)
	cfg = q.Data["Configuration"].(map[string]any)
	assert.Equal(t, float64(10), cfg["GridLines"])

	_, err = question.Slider("S3", "", question.SliderOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)

	_, err = question.Slider("S4", "", question.SliderOptions{Count: 3, Labels: []string{"a"}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)
}

func TestConstantSum(t *testing.T) {
	q, err := question.ConstantSum("C1", "Split", 0, question.SliderOptions{Labels: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "CS", q.Type())
	assert.Equal(t, "HBAR", q.Data["Selector"])
	settings := q.Data["Validation"].(map[string]any)["Settings"].(map[string]any)
	assert.Equal(t, "100", settings["ChoiceTotal"])

	q, err = question.ConstantSum("C2", "Split", 10, question.SliderOptions{Count: 3, Selector: question.SelectorSlider})
	require.NoError(t, err)
	assert.Equal(t, "HSLIDER", q.Data["Selector"])

	_, err = question.ConstantSum("C3", "", 0, question.SliderOptions{Count: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)

	_, err = question.ConstantSum("C4", "", 0, question.SliderOptions{Count: 2, Selector: "knob"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)
}

func TestFixedQuestions(t *testing.T) {
	assert.Equal(t, "DB", question.TextGraphic("<p>hi</p>", "").Type())
	assert.Equal(t, "Timing", question.Timing("T1").Type())
	assert.Equal(t, "reCAPTCHA", question.Captcha("", "prove it").ExportTag())

	m := question.MatrixTable("M1", "Agree?", "", []string{"s1", "s2"}, []string{"no", "yes"})
	assert.Equal(t, "Matrix", m.Type())
	assert.Equal(t, []int{1, 2}, m.Data["AnswerOrder"])
}

func TestScript(t *testing.T) {
	js := question.NewScript().
		OnLoad(`a();`).
		OnSubmit(`b();`).
		String()

	assert.Equal(t,
		"Qualtrics.SurveyEngine.addOnload(function(){\na();\n});\n\n"+
			"Qualtrics.SurveyEngine.addOnPageSubmit(function(type){\nb();\n});",
		js)

	click := question.NewScript().OnClick("c();").String()
	assert.Contains(t, click, "addOnload")
	assert.Contains(t, click, "this.questionclick = function(event, element) {\nc();\n};")

	assert.Equal(t, `Qualtrics.SurveyEngine.setEmbeddedData("score",1+1);`, question.SetEmbeddedData("score", "1+1"))
	assert.Equal(t, "${e://Field/score}", question.GetEmbeddedData("score"))
}
