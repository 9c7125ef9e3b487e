package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/ports"
)

var (
	_ ports.SurveyAPI   = (*Platform)(nil)
	_ ports.SurveyAdmin = (*Platform)(nil)
)

// Platform is an in-memory survey platform. It implements ports.SurveyAPI
// and ports.SurveyAdmin, plus the finer-grained calls served by the mock
// HTTP server. Safe for concurrent use.
//
// Values handed in or out are copied through JSON, so callers never share
// maps with the platform.
type Platform struct {
	mu      sync.RWMutex
	now     func() time.Time
	surveys map[string]*surveyRecord
	order   []string
	nextSV  int
	nextBL  int
}

type surveyRecord struct {
	id        string
	name      string
	created   time.Time
	modified  time.Time
	options   map[string]any
	blocks    map[string]map[string]any
	blockIDs  []string
	defaultID string
	questions map[string]map[string]any
	qids      []string
	nextQID   int
	flow      map[string]any
}

// NewPlatform creates an empty platform.
func NewPlatform() *Platform {
	return &Platform{
		now:     time.Now,
		surveys: make(map[string]*surveyRecord),
	}
}

func (p *Platform) survey(id string) (*surveyRecord, error) {
	s, ok := p.surveys[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSurveyNotFound, id)
	}
	return s, nil
}

func (s *surveyRecord) block(id string) (map[string]any, error) {
	if id == "" {
		id = s.defaultID
	}
	b, ok := s.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBlockNotFound, id)
	}
	return b, nil
}

func (s *surveyRecord) touch(now time.Time) { s.modified = now }

// CreateSurvey creates a survey with an empty default block and a flow that
// shows it.
func (p *Platform) CreateSurvey(ctx context.Context, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextSV++
	id := fmt.Sprintf("SV_%d", p.nextSV)
	now := p.now()
	s := &surveyRecord{
		id:        id,
		name:      name,
		created:   now,
		modified:  now,
		options:   map[string]any{},
		blocks:    map[string]map[string]any{},
		questions: map[string]map[string]any{},
	}
	def := p.newBlock(s, domain.DefaultBlockType, "Default Question Block")
	s.defaultID = def
	s.flow = map[string]any{
		"FlowID": "FL_1",
		"Type":   "Root",
		"Flow": []any{
			map[string]any{"FlowID": "FL_2", "Type": "Block", "ID": def},
		},
	}
	p.surveys[id] = s
	p.order = append(p.order, id)
	return id, nil
}

func (p *Platform) newBlock(s *surveyRecord, typ, description string) string {
	p.nextBL++
	id := fmt.Sprintf("BL_%d", p.nextBL)
	s.blocks[id] = map[string]any{
		"ID":            id,
		"Type":          typ,
		"Description":   description,
		"BlockElements": []any{},
	}
	s.blockIDs = append(s.blockIDs, id)
	return id
}

// DefaultBlockID returns the ID of the block created with the survey.
func (p *Platform) DefaultBlockID(ctx context.Context, surveyID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return "", err
	}
	return s.defaultID, nil
}

// ListSurveys returns every survey in creation order.
func (p *Platform) ListSurveys(ctx context.Context) ([]domain.SurveySummary, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	list := make([]domain.SurveySummary, 0, len(p.order))
	for _, id := range p.order {
		s := p.surveys[id]
		list = append(list, domain.SurveySummary{
			ID:           s.id,
			Name:         s.name,
			OwnerID:      "UR_memory",
			CreationDate: s.created.UTC().Format(time.RFC3339),
			LastModified: s.modified.UTC().Format(time.RFC3339),
		})
	}
	return list, nil
}

// GetSurvey returns the survey definition in the platform's wire shape.
func (p *Platform) GetSurvey(ctx context.Context, surveyID string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	return clone(map[string]any{
		"SurveyID":      s.id,
		"SurveyName":    s.name,
		"SurveyOptions": s.options,
		"Blocks":        s.blocks,
		"Questions":     s.questions,
		"SurveyFlow":    s.flow,
	})
}

// DeleteSurvey removes a survey.
func (p *Platform) DeleteSurvey(ctx context.Context, surveyID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.survey(surveyID); err != nil {
		return err
	}
	delete(p.surveys, surveyID)
	p.order = slices.DeleteFunc(p.order, func(id string) bool { return id == surveyID })
	return nil
}

// GetSurveyOptions returns a copy of the survey options.
func (p *Platform) GetSurveyOptions(ctx context.Context, surveyID string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	return clone(s.options)
}

// UpdateSurveyOptions replaces the survey options.
func (p *Platform) UpdateSurveyOptions(ctx context.Context, surveyID string, options map[string]any) error {
	copied, err := clone(options)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	s.options = copied
	s.touch(p.now())
	return nil
}

// ListQuestions returns the survey questions in creation order.
func (p *Platform) ListQuestions(ctx context.Context, surveyID string) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(s.qids))
	for _, qid := range s.qids {
		q, err := clone(s.questions[qid])
		if err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, nil
}

// GetQuestion returns one question.
func (p *Platform) GetQuestion(ctx context.Context, surveyID, questionID string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	q, ok := s.questions[questionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	return clone(q)
}

// CreateQuestion appends a question to a block (the default block when
// blockID is empty).
func (p *Platform) CreateQuestion(ctx context.Context, surveyID, blockID string, data map[string]any) (string, error) {
	copied, err := clone(data)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return "", err
	}
	b, err := s.block(blockID)
	if err != nil {
		return "", err
	}

	s.nextQID++
	qid := fmt.Sprintf("QID%d", s.nextQID)
	copied["QuestionID"] = qid
	s.questions[qid] = copied
	s.qids = append(s.qids, qid)
	b["BlockElements"] = append(elements(b), map[string]any{"Type": "Question", "QuestionID": qid})
	s.touch(p.now())
	return qid, nil
}

// UpdateQuestion replaces the data of a question.
func (p *Platform) UpdateQuestion(ctx context.Context, surveyID, questionID string, data map[string]any) error {
	copied, err := clone(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	if _, ok := s.questions[questionID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	copied["QuestionID"] = questionID
	s.questions[questionID] = copied
	s.touch(p.now())
	return nil
}

// DeleteQuestion removes a question and its block element.
func (p *Platform) DeleteQuestion(ctx context.Context, surveyID, questionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	if _, ok := s.questions[questionID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	delete(s.questions, questionID)
	s.qids = slices.DeleteFunc(s.qids, func(id string) bool { return id == questionID })
	for _, b := range s.blocks {
		b["BlockElements"] = slices.DeleteFunc(elements(b), func(e any) bool {
			m, ok := e.(map[string]any)
			return ok && m["QuestionID"] == questionID
		})
	}
	s.touch(p.now())
	return nil
}

// ListBlocks returns the survey blocks in creation order, default first.
func (p *Platform) ListBlocks(ctx context.Context, surveyID string) ([]map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(s.blockIDs))
	for _, id := range s.blockIDs {
		b, err := clone(s.blocks[id])
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, nil
}

// GetBlock returns one block.
func (p *Platform) GetBlock(ctx context.Context, surveyID, blockID string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	b, err := s.block(blockID)
	if err != nil {
		return nil, err
	}
	return clone(b)
}

// CreateBlock creates an empty standard block.
func (p *Platform) CreateBlock(ctx context.Context, surveyID, description string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return "", err
	}
	id := p.newBlock(s, "Standard", description)
	s.touch(p.now())
	return id, nil
}

// UpdateBlock replaces the data of a block. The block keeps its ID and
// Type.
func (p *Platform) UpdateBlock(ctx context.Context, surveyID, blockID string, data map[string]any) error {
	copied, err := clone(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	current, ok := s.blocks[blockID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBlockNotFound, blockID)
	}
	copied["ID"] = blockID
	copied["Type"] = current["Type"]
	if _, ok := copied["BlockElements"]; !ok {
		copied["BlockElements"] = []any{}
	}
	s.blocks[blockID] = copied
	s.touch(p.now())
	return nil
}

// DeleteBlock removes a standard block. The default block cannot be
// deleted.
func (p *Platform) DeleteBlock(ctx context.Context, surveyID, blockID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	if _, ok := s.blocks[blockID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrBlockNotFound, blockID)
	}
	if blockID == s.defaultID {
		return fmt.Errorf("default block %s cannot be deleted", blockID)
	}
	delete(s.blocks, blockID)
	s.blockIDs = slices.DeleteFunc(s.blockIDs, func(id string) bool { return id == blockID })
	s.touch(p.now())
	return nil
}

// CreatePageBreak appends a page break to a block (the default block when
// blockID is empty).
func (p *Platform) CreatePageBreak(ctx context.Context, surveyID, blockID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	b, err := s.block(blockID)
	if err != nil {
		return err
	}
	b["BlockElements"] = append(elements(b), map[string]any{"Type": "Page Break"})
	s.touch(p.now())
	return nil
}

// GetFlow returns the current flow document.
func (p *Platform) GetFlow(ctx context.Context, surveyID string) (map[string]any, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return nil, err
	}
	return clone(s.flow)
}

// UpdateFlow replaces the flow document. Every block it references must
// exist in the survey.
func (p *Platform) UpdateFlow(ctx context.Context, surveyID string, doc any) error {
	copied, err := clone(doc)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	for _, id := range referencedBlocks(copied) {
		if _, ok := s.blocks[id]; !ok {
			return fmt.Errorf("flow references %w: %s", domain.ErrBlockNotFound, id)
		}
	}
	s.flow = copied
	s.touch(p.now())
	return nil
}

// UpdateFlowElement replaces the element with the given FlowID.
func (p *Platform) UpdateFlowElement(ctx context.Context, surveyID, flowID string, element any) error {
	copied, err := clone(element)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.survey(surveyID)
	if err != nil {
		return err
	}
	if !replaceElement(s.flow, flowID, copied) {
		return fmt.Errorf("flow element %s not found in survey %s", flowID, surveyID)
	}
	s.touch(p.now())
	return nil
}

// Flow returns the last flow document stored for a survey, or nil.
func (p *Platform) Flow(surveyID string) map[string]any {
	f, err := p.GetFlow(context.Background(), surveyID)
	if err != nil {
		return nil
	}
	return f
}

func elements(b map[string]any) []any {
	els, _ := b["BlockElements"].([]any)
	return els
}

func children(el map[string]any) []any {
	kids, _ := el["Flow"].([]any)
	return kids
}

func referencedBlocks(el map[string]any) []string {
	var ids []string
	if el["Type"] == "Block" || el["Type"] == "Standard" {
		if id, ok := el["ID"].(string); ok {
			ids = append(ids, id)
		}
	}
	for _, c := range children(el) {
		if m, ok := c.(map[string]any); ok {
			ids = append(ids, referencedBlocks(m)...)
		}
	}
	return ids
}

func replaceElement(el map[string]any, flowID string, with map[string]any) bool {
	if el == nil {
		return false
	}
	if el["FlowID"] == flowID {
		clear(el)
		maps.Copy(el, with)
		return true
	}
	for _, c := range children(el) {
		if m, ok := c.(map[string]any); ok && replaceElement(m, flowID, with) {
			return true
		}
	}
	return false
}

// clone deep-copies v into a generic JSON object.
func clone(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("expected a JSON object: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
