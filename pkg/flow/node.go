package flow

import (
	"fmt"
	"strconv"

	"github.com/aretw0/qflow/pkg/domain"
)

// Type tags, as expected by the platform.
const (
	TypeRoot            = "Root"
	TypeGroup           = "Group"
	TypeBlockRandomizer = "BlockRandomizer"
	TypeBlock           = "Block"
	TypeEndSurvey       = "EndSurvey"
)

// FirstFlowID is the identifier given to the root by Finalize.
const FirstFlowID = 1

// FormatFlowID renders a flow identifier, e.g. FL_3.
func FormatFlowID(id int) string {
	return "FL_" + strconv.Itoa(id)
}

// Node is an element of a flow tree.
// The set of implementations is closed: Root, Group, RandomSubset, BlockRef
// and Terminator.
type Node interface {
	// Type returns the element's type tag.
	Type() string

	// Children returns the ordered children. Leaves return nil.
	Children() []Node

	// Compile assigns id to this element, ids id+1.. to its descendants in
	// pre-order, and returns the element document with the highest id used.
	Compile(id int, ids *BlockIDs) (Element, int, error)

	// BlockRefs returns every block reference in the subtree, in
	// pre-order, duplicates included.
	BlockRefs() []*BlockRef

	isNode()
}

// Child is a Node that may be placed under a container: every variant but
// Root, since a tree has exactly one root.
type Child interface {
	Node
	isChild()
}

// Container is a Node that accepts children.
type Container interface {
	Node

	// AppendChild appends child and returns it, for chaining. child must not
	// be a nil pointer.
	AppendChild(child Child) Node

	// AppendBlock wraps b in a new BlockRef, appends it, and returns b.
	AppendBlock(b *domain.Block) *domain.Block
}

// Append adds child to parent. It is the checked path for trees assembled
// from runtime data: a leaf parent yields ErrNoChildren, a Root child
// ErrNestedRoot and a nil child (typed or not) ErrNilChild.
func Append(parent, child Node) (Node, error) {
	if isNil(child) {
		return nil, ErrNilChild
	}
	c, ok := parent.(Container)
	if !ok {
		return nil, fmt.Errorf("%s: %w", parent.Type(), ErrNoChildren)
	}
	ch, ok := child.(Child)
	if !ok {
		return nil, fmt.Errorf("%s: %w", parent.Type(), ErrNestedRoot)
	}
	return c.AppendChild(ch), nil
}

func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Root:
		return v == nil
	case *Group:
		return v == nil
	case *RandomSubset:
		return v == nil
	case *BlockRef:
		return v == nil
	case *Terminator:
		return v == nil
	}
	return false
}

// AppendBlock is the checked counterpart of Container.AppendBlock.
func AppendBlock(parent Node, b *domain.Block) (*domain.Block, error) {
	if _, err := Append(parent, NewBlockRef(b)); err != nil {
		return nil, err
	}
	return b, nil
}

// branch holds the children shared by container elements.
type branch struct {
	nodes []Node
}

func newBranch(children []Child) branch {
	nodes := make([]Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, c)
	}
	return branch{nodes: nodes}
}

func (b *branch) Children() []Node {
	return b.nodes
}

func (b *branch) AppendChild(child Child) Node {
	b.nodes = append(b.nodes, child)
	return child
}

func (b *branch) AppendBlock(blk *domain.Block) *domain.Block {
	b.AppendChild(NewBlockRef(blk))
	return blk
}

func (b *branch) BlockRefs() []*BlockRef {
	var refs []*BlockRef
	for _, child := range b.nodes {
		refs = append(refs, child.BlockRefs()...)
	}
	return refs
}

// compileChildren numbers the children after id and returns their documents
// and the last id consumed (id itself when there are no children).
func (b *branch) compileChildren(id int, ids *BlockIDs) ([]Element, int, error) {
	last := id
	var elements []Element
	for _, child := range b.nodes {
		el, end, err := child.Compile(last+1, ids)
		if err != nil {
			return nil, 0, err
		}
		elements = append(elements, el)
		last = end
	}
	return elements, last, nil
}

func (b *branch) isNode() {}
