package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/qflow/internal/dto"
	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/aretw0/qflow/pkg/question"
	"github.com/aretw0/qflow/pkg/survey"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is returned for definitions that parse but do not
// describe a valid survey.
var ErrInvalidDefinition = errors.New("invalid survey definition")

// Format is the encoding of a definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension. Anything other
// than .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadSurvey reads a survey definition file.
func LoadSurvey(path string) (survey.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	s, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a definition. A definition with a "flow" list becomes a
// flow survey, one with "blocks" a block survey, and anything else a basic
// survey built from "questions".
func Parse(data []byte, format Format) (survey.Survey, error) {
	raw := map[string]any{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	var def dto.SurveyDefinition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return Build(def)
}

// Build turns a decoded definition into a survey.
func Build(def dto.SurveyDefinition) (survey.Survey, error) {
	switch {
	case len(def.Flow) > 0:
		return buildFlowSurvey(def)
	case len(def.Blocks) > 0:
		if len(def.Questions) > 0 {
			return nil, fmt.Errorf("%w: questions and blocks cannot be combined; put the questions in a block", ErrInvalidDefinition)
		}
		blocks, _, err := buildBlocks(def.Blocks)
		if err != nil {
			return nil, err
		}
		s := survey.NewBlockSurvey(def.Name, blocks...)
		applyOptions(&s.Base, def.Options)
		return s, nil
	default:
		qs, err := buildQuestions("questions", def.Questions)
		if err != nil {
			return nil, err
		}
		s := survey.NewBasic(def.Name, qs...)
		applyOptions(&s.Base, def.Options)
		return s, nil
	}
}

func buildFlowSurvey(def dto.SurveyDefinition) (survey.Survey, error) {
	if len(def.Questions) > 0 {
		return nil, fmt.Errorf("%w: a flow survey takes its questions from blocks", ErrInvalidDefinition)
	}
	_, byID, err := buildBlocks(def.Blocks)
	if err != nil {
		return nil, err
	}
	s := survey.NewFlowSurvey(def.Name)
	root := flow.NewRoot()
	if err := buildFlow(root, "flow", def.Flow, byID); err != nil {
		return nil, err
	}
	for _, child := range root.Children() {
		s.AppendFlow(child.(flow.Child))
	}
	applyOptions(&s.Base, def.Options)
	return s, nil
}

func applyOptions(b *survey.Base, o dto.Options) {
	if o.Raw != nil {
		b.SetOptions(o.Raw)
	}
	if o.Header != nil {
		b.SetHeaderHTML(*o.Header)
	}
	if o.Footer != nil {
		b.SetFooterHTML(*o.Footer)
	}
	if o.CustomCSS != nil {
		b.SetCustomCSS(*o.CustomCSS)
	}
	if o.ExternalCSS != nil {
		b.SetExternalCSSURL(*o.ExternalCSS)
	}
	if o.BackButton != nil {
		b.SetShowBackButton(*o.BackButton)
	}
	if o.ProgressBar != nil {
		b.SetProgressBarDisplay(*o.ProgressBar)
	}
}

func buildBlocks(defs []dto.Block) ([]*domain.Block, map[string]*domain.Block, error) {
	blocks := make([]*domain.Block, 0, len(defs))
	byID := make(map[string]*domain.Block, len(defs))
	for i, bd := range defs {
		path := fmt.Sprintf("blocks[%d]", i)
		qs, err := buildQuestions(path+".questions", bd.Questions)
		if err != nil {
			return nil, nil, err
		}
		b := domain.NewBlock(bd.Description, qs...)
		if bd.ID != "" {
			if _, dup := byID[bd.ID]; dup {
				return nil, nil, fmt.Errorf("%w: %s: duplicate block id %q", ErrInvalidDefinition, path, bd.ID)
			}
			byID[bd.ID] = b
		}
		blocks = append(blocks, b)
	}
	return blocks, byID, nil
}

func buildFlow(parent flow.Node, path string, defs []dto.FlowElement, blocks map[string]*domain.Block) error {
	for i, fd := range defs {
		elPath := fmt.Sprintf("%s[%d]", path, i)
		node, err := buildElement(elPath, fd, blocks)
		if err != nil {
			return err
		}
		if _, err := flow.Append(parent, node); err != nil {
			return fmt.Errorf("%s: %w", elPath, err)
		}
		if err := buildFlow(node, elPath+".flow", fd.Flow, blocks); err != nil {
			return err
		}
	}
	return nil
}

func buildElement(path string, fd dto.FlowElement, blocks map[string]*domain.Block) (flow.Node, error) {
	switch strings.ToLower(fd.Type) {
	case "block":
		b, ok := blocks[fd.Block]
		if !ok {
			return nil, fmt.Errorf("%w: %s: unknown block %q", ErrInvalidDefinition, path, fd.Block)
		}
		return flow.NewBlockRef(b), nil
	case "group":
		return flow.NewGroup(fd.Description), nil
	case "randomizer", "block_randomizer", "blockrandomizer":
		if fd.SubSet < 1 {
			return nil, fmt.Errorf("%w: %s: randomizer subset must be at least 1", ErrInvalidDefinition, path)
		}
		return flow.NewRandomSubset(fd.SubSet, fd.EvenPresentation), nil
	case "end_survey", "endsurvey", "end":
		return flow.NewTerminator(), nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown flow element type %q", ErrInvalidDefinition, path, fd.Type)
	}
}

func buildQuestions(path string, defs []dto.Question) ([]domain.Question, error) {
	qs := make([]domain.Question, 0, len(defs))
	for i, qd := range defs {
		q, err := buildQuestion(qd)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func buildQuestion(qd dto.Question) (domain.Question, error) {
	sliders := question.SliderOptions{
		ScriptJS:      qd.Script,
		Count:         qd.Count,
		Labels:        qd.Labels,
		Min:           qd.Min,
		Max:           qd.Max,
		ForceResponse: qd.ForceResponse,
		Selector:      qd.Selector,
	}
	switch strings.ToLower(qd.Type) {
	case "page_break":
		return domain.PageBreak(), nil
	case "text_graphic", "text":
		return question.TextGraphic(qd.Text, qd.Script), nil
	case "text_entry":
		return question.TextEntry(qd.Tag, qd.Text, question.TextEntryOptions{
			ScriptJS:      qd.Script,
			ForceResponse: qd.ForceResponse,
			Size:          qd.Size,
		})
	case "multiple_choice":
		return question.MultipleChoice(qd.Tag, qd.Text, question.Options(qd.Options...), question.MultipleChoiceOptions{
			ScriptJS:      qd.Script,
			ForceResponse: qd.ForceResponse,
			Selection:     qd.Selection,
			RecodeValues:  qd.RecodeValues,
		})
	case "matrix", "matrix_table":
		return question.MatrixTable(qd.Tag, qd.Text, qd.Script, qd.Statements, qd.Scale), nil
	case "slider":
		return question.Slider(qd.Tag, qd.Text, sliders)
	case "constant_sum":
		return question.ConstantSum(qd.Tag, qd.Text, qd.Total, sliders)
	case "timing":
		return question.Timing(qd.Tag), nil
	case "captcha":
		return question.Captcha(qd.Tag, qd.Text), nil
	case "raw":
		if len(qd.Data) == 0 {
			return domain.Question{}, fmt.Errorf("%w: raw question needs data", ErrInvalidDefinition)
		}
		return domain.NewQuestion(qd.Data), nil
	default:
		return domain.Question{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidDefinition, qd.Type)
	}
}
