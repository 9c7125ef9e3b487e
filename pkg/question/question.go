package question

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/qflow/pkg/domain"
)

// Response sizes for TextEntry.
const (
	SizeSingleLine = "single-line"
	SizeMultiLine  = "multi-line"
	SizeEssay      = "essay"
)

// Selection methods for MultipleChoice.
const (
	SelectButtonList   = "button-list"
	SelectDropdownList = "dropdown-list"
)

// Selectors for ConstantSum.
const (
	SelectorBar    = "bar"
	SelectorSlider = "slider"
)

// SelfSpecified is turned into a text-entry option by MultipleChoice.
const SelfSpecified = "Self-specified"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidQuestion, fmt.Sprintf(format, args...))
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func forceResponse(force bool) map[string]any {
	return map[string]any{
		"Settings": map[string]any{
			"ForceResponse":     onOff(force),
			"ForceResponseType": "ON",
			"Type":              "None",
		},
	}
}

// TextGraphic displays HTML (and any graphics it embeds) without collecting input.
func TextGraphic(textHTML, scriptJS string) domain.Question {
	return domain.NewQuestion(map[string]any{
		"QuestionText": textHTML,
		"QuestionJS":   scriptJS,
		"QuestionType": "DB",
		"Selector":     "TB",
		"Language":     []any{},
	})
}

// TextEntryOptions configures a TextEntry question.
type TextEntryOptions struct {
	ScriptJS      string
	ForceResponse bool
	// Size is one of SizeSingleLine (default), SizeMultiLine, SizeEssay.
	Size string
}

// TextEntry is a free-text input box.
func TextEntry(exportTag, textHTML string, opts TextEntryOptions) (domain.Question, error) {
	var selector string
	switch opts.Size {
	case "", SizeSingleLine:
		selector = "SL"
	case SizeMultiLine:
		selector = "ML"
	case SizeEssay:
		selector = "ESTB"
	default:
		return domain.Question{}, invalid("unknown response size %q", opts.Size)
	}

	return domain.NewQuestion(map[string]any{
		"QuestionType":  "TE",
		"Selector":      selector,
		"DataExportTag": exportTag,
		"QuestionText":  textHTML,
		"QuestionJS":    opts.ScriptJS,
		"Validation":    forceResponse(opts.ForceResponse),
		"Language":      []any{},
	}), nil
}

// Option is a choice of a multiple choice question.
type Option interface {
	choice() map[string]any
}

// BasicOption is a choice with a label only.
type BasicOption string

func (o BasicOption) choice() map[string]any {
	return map[string]any{"Display": string(o)}
}

// TextOption is a choice with a label and a text entry field.
type TextOption string

func (o TextOption) choice() map[string]any {
	entry, _ := json.Marshal(true)
	return map[string]any{
		"Display": string(o),
		// The platform wants a JSON-encoded string here.
		"TextEntry": string(entry),
	}
}

// Options converts labels to options. SelfSpecified becomes a TextOption.
func Options(labels ...string) []Option {
	opts := make([]Option, 0, len(labels))
	for _, label := range labels {
		if label == SelfSpecified {
			opts = append(opts, TextOption(label))
			continue
		}
		opts = append(opts, BasicOption(label))
	}
	return opts
}

// MultipleChoiceOptions configures a MultipleChoice question.
type MultipleChoiceOptions struct {
	ScriptJS      string
	ForceResponse bool
	// Selection is SelectButtonList (default) or SelectDropdownList.
	Selection    string
	RecodeValues map[string]any
}

// MultipleChoice is a single-answer choice question.
func MultipleChoice(exportTag, textHTML string, options []Option, opts MultipleChoiceOptions) (domain.Question, error) {
	var selector, subSelector string
	switch opts.Selection {
	case "", SelectButtonList:
		selector, subSelector = "SAVR", "TX"
	case SelectDropdownList:
		selector, subSelector = "DL", ""
	default:
		return domain.Question{}, invalid("unknown selection method %q", opts.Selection)
	}

	order := make([]int, len(options))
	choices := make(map[string]any, len(options))
	for i, opt := range options {
		order[i] = i + 1
		choices[fmt.Sprint(i+1)] = opt.choice()
	}
	recode := opts.RecodeValues
	if recode == nil {
		recode = map[string]any{}
	}

	return domain.NewQuestion(map[string]any{
		"Selector":      selector,
		"SubSelector":   subSelector,
		"QuestionType":  "MC",
		"ChoiceOrder":   order,
		"Choices":       choices,
		"DataExportTag": exportTag,
		"QuestionText":  textHTML,
		"QuestionJS":    opts.ScriptJS,
		"Validation":    forceResponse(opts.ForceResponse),
		"RecodeValues":  recode,
		"Language":      []any{},
	}), nil
}

// MatrixTable stacks single-answer questions (statements) against a shared
// answer scale. Statements become Choices and the scale becomes Answers.
func MatrixTable(exportTag, textHTML, scriptJS string, statements, scale []string) domain.Question {
	choices, choiceOrder := numbered(statements, 1)
	answers, answerOrder := numbered(scale, 1)
	return domain.NewQuestion(map[string]any{
		"QuestionType":  "Matrix",
		"Selector":      "Likert",
		"SubSelector":   "SingleAnswer",
		"DataExportTag": exportTag,
		"QuestionText":  textHTML,
		"QuestionJS":    scriptJS,
		"Choices":       choices,
		"ChoiceOrder":   choiceOrder,
		"Answers":       answers,
		"AnswerOrder":   answerOrder,
		"Language":      []any{},
	})
}

func numbered(labels []string, start int) (map[string]any, []int) {
	items := make(map[string]any, len(labels))
	order := make([]int, len(labels))
	for i, label := range labels {
		items[fmt.Sprint(i+start)] = map[string]any{"Display": label}
		order[i] = i + start
	}
	return items, order
}

// SliderOptions configures Slider and ConstantSum questions.
// Give Labels, Count, or both (they must agree).
type SliderOptions struct {
	ScriptJS string
	Count    int
	Labels   []string
	Min      float64
	// Max defaults to 100 when zero.
	Max float64
	// ForceResponse applies to Slider only.
	ForceResponse bool
	// Selector applies to ConstantSum only: SelectorBar (default) or SelectorSlider.
	Selector string
}

func (o SliderOptions) resolve() ([]string, float64, float64, error) {
	labels := o.Labels
	switch {
	case len(labels) == 0 && o.Count <= 0:
		return nil, 0, 0, invalid("provide either labels or a slider count")
	case len(labels) == 0:
		labels = make([]string, o.Count)
	case o.Count > 0 && o.Count != len(labels):
		return nil, 0, 0, invalid("%d labels given for %d sliders", len(labels), o.Count)
	}
	hi := o.Max
	if hi == 0 {
		hi = 100
	}
	return labels, o.Min, hi, nil
}

// gridLines caps the tick marks at ten for wide ranges.
func gridLines(lo, hi float64) float64 {
	if diff := hi - lo; diff <= 20 {
		return diff
	}
	return 9
}

// Slider collects one or more values with horizontal sliders.
func Slider(exportTag, textHTML string, opts SliderOptions) (domain.Question, error) {
	labels, lo, hi, err := opts.resolve()
	if err != nil {
		return domain.Question{}, err
	}
	choices, order := numbered(labels, 0)

	return domain.NewQuestion(map[string]any{
		"DataExportTag": exportTag,
		"ChoiceOrder":   order,
		"Choices":       choices,
		"Configuration": map[string]any{
			"CSSliderMin":               lo,
			"CSSliderMax":               hi,
			"CustomStart":               false,
			"GridLines":                 gridLines(lo, hi),
			"MobileFirst":               true,
			"NotApplicable":             false,
			"NumDecimals":               "0",
			"QuestionDescriptionOption": "UseText",
			"ShowValue":                 true,
			"SnapToGrid":                false,
		},
		"Language":     []any{},
		"QuestionText": textHTML,
		"QuestionJS":   opts.ScriptJS,
		"QuestionType": "Slider",
		"Selector":     "HSLIDER",
		"Validation": map[string]any{
			"Settings": map[string]any{
				"ForceResponse":     onOff(opts.ForceResponse),
				"ForceResponseType": onOff(opts.ForceResponse),
				"Type":              "None",
			},
		},
	}), nil
}

// ConstantSum is a slider question whose values must add up to a total.
func ConstantSum(exportTag, textHTML string, total float64, opts SliderOptions) (domain.Question, error) {
	labels, lo, hi, err := opts.resolve()
	if err != nil {
		return domain.Question{}, err
	}
	if len(labels) < 2 {
		return domain.Question{}, invalid("constant sum needs at least 2 sliders, got %d", len(labels))
	}
	var selector string
	switch opts.Selector {
	case "", SelectorBar:
		selector = "HBAR"
	case SelectorSlider:
		selector = "HSLIDER"
	default:
		return domain.Question{}, invalid("unknown selector %q", opts.Selector)
	}
	if total == 0 {
		total = 100
	}
	choices, order := numbered(labels, 0)

	return domain.NewQuestion(map[string]any{
		"DataExportTag": exportTag,
		"ChoiceOrder":   order,
		"Choices":       choices,
		"Configuration": map[string]any{
			"CSSliderMin":               lo,
			"CSSliderMax":               hi,
			"CustomStart":               false,
			"GridLines":                 gridLines(lo, hi),
			"NumDecimals":               "0",
			"QuestionDescriptionOption": "UseText",
			"ShowValue":                 true,
		},
		"ClarifyingSymbolType": "None",
		"Language":             []any{},
		"QuestionText":         textHTML,
		"QuestionJS":           opts.ScriptJS,
		"QuestionType":         "CS",
		"Selector":             selector,
		"Validation": map[string]any{
			"Settings": map[string]any{
				"ChoiceTotal":  fmt.Sprint(total),
				"EnforceRange": nil,
				"Type":         "ChoicesTotal",
			},
		},
	}), nil
}

// Timing is invisible to participants; it records time spent on the page.
func Timing(exportTag string) domain.Question {
	return domain.NewQuestion(map[string]any{
		"QuestionType":  "Timing",
		"Selector":      "PageTimer",
		"DataExportTag": exportTag,
		"Choices": map[string]any{
			"1": map[string]any{"Display": "First Click"},
			"2": map[string]any{"Display": "Last Click"},
			"3": map[string]any{"Display": "Page Submit"},
			"4": map[string]any{"Display": "Click Count"},
		},
		"Configuration": map[string]any{
			"MaxSeconds": "0",
			"MinSeconds": "0",
		},
		"DefaultChoices": false,
		"Language":       []any{},
	})
}

// DefaultCaptchaTag is the export tag used when Captcha gets an empty one.
const DefaultCaptchaTag = "reCAPTCHA"

// Captcha embeds a reCAPTCHA challenge the participant must pass.
func Captcha(exportTag, textHTML string) domain.Question {
	if exportTag == "" {
		exportTag = DefaultCaptchaTag
	}
	return domain.NewQuestion(map[string]any{
		"QuestionType":        "Captcha",
		"Selector":            "V2",
		"DataExportTag":       exportTag,
		"QuestionDescription": textHTML,
		"QuestionText":        textHTML,
		"QuestionText_Unsafe": textHTML,
		"GradingData":         []any{},
		"Language":            []any{},
	})
}
