package flow

import "github.com/aretw0/qflow/pkg/domain"

// BlockRef is a leaf that shows one block. Several BlockRefs may wrap the
// same *domain.Block; the block is uploaded once and every reference
// resolves to its identifier.
type BlockRef struct {
	block *domain.Block
}

// NewBlockRef wraps b.
func NewBlockRef(b *domain.Block) *BlockRef {
	return &BlockRef{block: b}
}

// Block returns the wrapped block.
func (r *BlockRef) Block() *domain.Block { return r.block }

func (r *BlockRef) Type() string { return TypeBlock }

func (r *BlockRef) Children() []Node { return nil }

func (r *BlockRef) BlockRefs() []*BlockRef { return []*BlockRef{r} }

func (r *BlockRef) Compile(id int, ids *BlockIDs) (Element, int, error) {
	flowID := FormatFlowID(id)
	blockID, ok := ids.Lookup(r.block)
	if !ok {
		desc := ""
		if r.block != nil {
			desc = r.block.Description
		}
		return nil, 0, &MissingBlockError{FlowID: flowID, Description: desc}
	}
	return &BlockElement{
		FlowID:   flowID,
		Type:     TypeBlock,
		ID:       blockID,
		Autofill: []any{},
	}, id, nil
}

func (r *BlockRef) isNode()  {}
func (r *BlockRef) isChild() {}
