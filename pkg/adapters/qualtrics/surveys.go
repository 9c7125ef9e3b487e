package qualtrics

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"

	"github.com/aretw0/qflow/pkg/domain"
)

const (
	routeSurveys     = "surveys"
	routeDefinitions = "survey-definitions"
	routeDefinition  = "survey-definitions/{surveyID}"
	routeOptions     = "survey-definitions/{surveyID}/options"
	routeQuestions   = "survey-definitions/{surveyID}/questions"
	routeQuestion    = "survey-definitions/{surveyID}/questions/{questionID}"
	routeBlocks      = "survey-definitions/{surveyID}/blocks"
	routeBlock       = "survey-definitions/{surveyID}/blocks/{blockID}"
	routeFlow        = "survey-definitions/{surveyID}/flow"
	routeFlowElement = "survey-definitions/{surveyID}/flow/{flowID}"
	pageBreakType    = "Page Break"
)

func definition(surveyID string, rest ...string) string {
	p := "survey-definitions/" + url.PathEscape(surveyID)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

type surveyPage struct {
	Elements []domain.SurveySummary `json:"elements"`
	NextPage string                 `json:"nextPage"`
}

// ListSurveys returns every survey in the account, following pagination.
func (c *Client) ListSurveys(ctx context.Context) ([]domain.SurveySummary, error) {
	var all []domain.SurveySummary
	req := request{method: http.MethodGet, endpoint: routeSurveys, route: routeSurveys}
	for {
		var page surveyPage
		if err := c.do(ctx, req, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Elements...)
		if page.NextPage == "" {
			return all, nil
		}
		req = request{method: http.MethodGet, endpoint: page.NextPage, route: routeSurveys, absolute: true}
	}
}

// GetSurvey returns the full survey definition.
func (c *Client) GetSurvey(ctx context.Context, surveyID string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, definition(surveyID), routeDefinition, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSurvey creates an empty English survey and returns its ID.
func (c *Client) CreateSurvey(ctx context.Context, name string) (string, error) {
	var out struct {
		SurveyID string `json:"SurveyID"`
	}
	body := map[string]any{
		"SurveyName":      name,
		"Language":        "EN",
		"ProjectCategory": "CORE",
	}
	if err := c.post(ctx, routeDefinitions, routeDefinitions, body, &out); err != nil {
		return "", err
	}
	if out.SurveyID == "" {
		return "", fmt.Errorf("create survey %q: response has no SurveyID", name)
	}
	return out.SurveyID, nil
}

// DeleteSurvey deletes a survey and every response it has collected.
// There is no confirmation at this level.
func (c *Client) DeleteSurvey(ctx context.Context, surveyID string) error {
	return c.delete(ctx, definition(surveyID), routeDefinition)
}

// GetSurveyOptions returns the global options of a survey.
func (c *Client) GetSurveyOptions(ctx context.Context, surveyID string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, definition(surveyID, "options"), routeOptions, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// UpdateSurveyOptions replaces the global options of a survey.
func (c *Client) UpdateSurveyOptions(ctx context.Context, surveyID string, options map[string]any) error {
	return c.put(ctx, definition(surveyID, "options"), routeOptions, options)
}

// PartialUpdateSurveyOptions fetches the options, merges options over them
// and stores the result.
func (c *Client) PartialUpdateSurveyOptions(ctx context.Context, surveyID string, options map[string]any) error {
	current, err := c.GetSurveyOptions(ctx, surveyID)
	if err != nil {
		return err
	}
	maps.Copy(current, options)
	return c.UpdateSurveyOptions(ctx, surveyID, current)
}

// ListQuestions returns every question of a survey.
func (c *Client) ListQuestions(ctx context.Context, surveyID string) ([]map[string]any, error) {
	var out struct {
		Elements []map[string]any `json:"elements"`
	}
	if err := c.get(ctx, definition(surveyID, "questions"), routeQuestions, &out); err != nil {
		return nil, err
	}
	return out.Elements, nil
}

// GetQuestion returns one question.
func (c *Client) GetQuestion(ctx context.Context, surveyID, questionID string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, definition(surveyID, "questions", questionID), routeQuestion, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQuestion adds a question to a block, or to the default block when
// blockID is empty, and returns the question ID.
func (c *Client) CreateQuestion(ctx context.Context, surveyID, blockID string, data map[string]any) (string, error) {
	endpoint := definition(surveyID, "questions")
	if blockID != "" {
		endpoint += "?blockId=" + url.QueryEscape(blockID)
	}
	var out struct {
		QuestionID string `json:"QuestionID"`
	}
	if err := c.post(ctx, endpoint, routeQuestions, data, &out); err != nil {
		return "", err
	}
	return out.QuestionID, nil
}

// UpdateQuestion replaces the data of a question.
func (c *Client) UpdateQuestion(ctx context.Context, surveyID, questionID string, data map[string]any) error {
	return c.put(ctx, definition(surveyID, "questions", questionID), routeQuestion, data)
}

// PartialUpdateQuestion fetches a question, merges data over it and stores
// the result.
func (c *Client) PartialUpdateQuestion(ctx context.Context, surveyID, questionID string, data map[string]any) error {
	current, err := c.GetQuestion(ctx, surveyID, questionID)
	if err != nil {
		return err
	}
	if current == nil {
		current = map[string]any{}
	}
	maps.Copy(current, data)
	return c.UpdateQuestion(ctx, surveyID, questionID, current)
}

// DeleteQuestion removes a question from a survey.
func (c *Client) DeleteQuestion(ctx context.Context, surveyID, questionID string) error {
	return c.delete(ctx, definition(surveyID, "questions", questionID), routeQuestion)
}

// ListBlocks extracts the blocks from the survey definition, ordered by ID.
func (c *Client) ListBlocks(ctx context.Context, surveyID string) ([]map[string]any, error) {
	var out struct {
		Blocks map[string]map[string]any `json:"Blocks"`
	}
	if err := c.get(ctx, definition(surveyID), routeDefinition, &out); err != nil {
		return nil, err
	}
	ids := slices.Sorted(maps.Keys(out.Blocks))
	blocks := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		blocks = append(blocks, out.Blocks[id])
	}
	return blocks, nil
}

// DefaultBlockID finds the block every survey is created with.
func (c *Client) DefaultBlockID(ctx context.Context, surveyID string) (string, error) {
	blocks, err := c.ListBlocks(ctx, surveyID)
	if err != nil {
		return "", err
	}
	for _, b := range blocks {
		if b["Type"] == domain.DefaultBlockType {
			if id, ok := b["ID"].(string); ok {
				return id, nil
			}
		}
	}
	return "", fmt.Errorf("survey %s has no default block: %w", surveyID, domain.ErrBlockNotFound)
}

// GetBlock returns one block.
func (c *Client) GetBlock(ctx context.Context, surveyID, blockID string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, definition(surveyID, "blocks", blockID), routeBlock, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBlock creates an empty standard block and returns its ID.
func (c *Client) CreateBlock(ctx context.Context, surveyID, description string) (string, error) {
	var out struct {
		BlockID string `json:"BlockID"`
	}
	body := map[string]any{"Description": description, "Type": "Standard"}
	if err := c.post(ctx, definition(surveyID, "blocks"), routeBlocks, body, &out); err != nil {
		return "", err
	}
	if out.BlockID == "" {
		return "", fmt.Errorf("create block %q: response has no BlockID", description)
	}
	return out.BlockID, nil
}

// UpdateBlock replaces the data of a block.
func (c *Client) UpdateBlock(ctx context.Context, surveyID, blockID string, data map[string]any) error {
	return c.put(ctx, definition(surveyID, "blocks", blockID), routeBlock, data)
}

// DeleteBlock removes a block from a survey.
func (c *Client) DeleteBlock(ctx context.Context, surveyID, blockID string) error {
	return c.delete(ctx, definition(surveyID, "blocks", blockID), routeBlock)
}

// CreatePageBreak appends a page break to a block's elements. The API has
// no call for this, so the block is fetched and stored back. An empty
// blockID addresses the default block.
func (c *Client) CreatePageBreak(ctx context.Context, surveyID, blockID string) error {
	if blockID == "" {
		id, err := c.DefaultBlockID(ctx, surveyID)
		if err != nil {
			return err
		}
		blockID = id
	}
	block, err := c.GetBlock(ctx, surveyID, blockID)
	if err != nil {
		return err
	}
	if block == nil {
		block = map[string]any{}
	}
	elements, _ := block["BlockElements"].([]any)
	block["BlockElements"] = append(elements, map[string]any{"Type": pageBreakType})
	return c.UpdateBlock(ctx, surveyID, blockID, block)
}

// GetFlow returns the flow document of a survey.
func (c *Client) GetFlow(ctx context.Context, surveyID string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, definition(surveyID, "flow"), routeFlow, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFlow replaces the flow of a survey. doc is usually the
// *flow.RootElement returned by Root.Finalize.
func (c *Client) UpdateFlow(ctx context.Context, surveyID string, doc any) error {
	return c.put(ctx, definition(surveyID, "flow"), routeFlow, doc)
}

// UpdateFlowElement replaces a single flow element.
func (c *Client) UpdateFlowElement(ctx context.Context, surveyID, flowID string, element any) error {
	return c.put(ctx, definition(surveyID, "flow", flowID), routeFlowElement, element)
}
