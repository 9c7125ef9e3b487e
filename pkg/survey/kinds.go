package survey

import (
	"fmt"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
)

// BasicSurvey is a flat list of questions, with page breaks allowed.
type BasicSurvey struct {
	Base
	Questions []domain.Question
}

// NewBasic creates a basic survey. An empty name becomes DefaultName.
func NewBasic(name string, questions ...domain.Question) *BasicSurvey {
	return &BasicSurvey{
		Base:      newBase(name),
		Questions: append([]domain.Question(nil), questions...),
	}
}

// AppendQuestion adds q to the end of the survey.
func (s *BasicSurvey) AppendQuestion(q domain.Question) domain.Question {
	s.Questions = append(s.Questions, q)
	return q
}

// AppendPageBreak starts a new page.
func (s *BasicSurvey) AppendPageBreak() {
	s.Questions = append(s.Questions, domain.PageBreak())
}

func (s *BasicSurvey) Plan() (*Plan, error) {
	blk := &domain.Block{Questions: s.Questions}
	return &Plan{
		Blocks: []PlannedBlock{{Block: blk, UseDefault: true}},
		IDs:    flow.NewBlockIDs(),
	}, nil
}

// BlockSurvey shows its blocks one after another.
type BlockSurvey struct {
	Base
	Blocks []*domain.Block
}

// NewBlockSurvey creates a block survey. An empty name becomes DefaultName.
func NewBlockSurvey(name string, blocks ...*domain.Block) *BlockSurvey {
	return &BlockSurvey{
		Base:   newBase(name),
		Blocks: append([]*domain.Block(nil), blocks...),
	}
}

// AppendBlock adds b and returns it.
func (s *BlockSurvey) AppendBlock(b *domain.Block) *domain.Block {
	s.Blocks = append(s.Blocks, b)
	return b
}

func (s *BlockSurvey) Plan() (*Plan, error) {
	plan := &Plan{IDs: flow.NewBlockIDs()}
	for _, b := range s.Blocks {
		plan.Blocks = append(plan.Blocks, PlannedBlock{Block: b})
	}
	return plan, nil
}

// FlowSurvey arranges blocks with a flow tree. Elements are the children of
// the root flow.
type FlowSurvey struct {
	Base
	Elements []flow.Child
}

// NewFlowSurvey creates a flow survey. An empty name becomes DefaultName.
func NewFlowSurvey(name string, elements ...flow.Child) *FlowSurvey {
	return &FlowSurvey{
		Base:     newBase(name),
		Elements: append([]flow.Child(nil), elements...),
	}
}

// AppendFlow adds a root-level element and returns it.
func (s *FlowSurvey) AppendFlow(n flow.Child) flow.Child {
	s.Elements = append(s.Elements, n)
	return n
}

// AppendBlock adds a root-level reference to b and returns b.
func (s *FlowSurvey) AppendBlock(b *domain.Block) *domain.Block {
	s.AppendFlow(flow.NewBlockRef(b))
	return b
}

// Root builds a fresh root over the current elements.
func (s *FlowSurvey) Root() *flow.Root {
	return flow.NewRoot(s.Elements...)
}

func (s *FlowSurvey) Plan() (*Plan, error) {
	root := s.Root()
	ids := flow.CollectDistinctBlocks(root)
	plan := &Plan{IDs: ids, Root: root}
	for _, b := range ids.Blocks() {
		if b == nil {
			return nil, fmt.Errorf("flow references a nil block: %w", flow.ErrBlockNotRegistered)
		}
		plan.Blocks = append(plan.Blocks, PlannedBlock{Block: b})
	}
	return plan, nil
}
