package flow

// DefaultGroupDescription is used when a Group is created without one.
const DefaultGroupDescription = "Untitled Group"

// Group evaluates its children in order.
type Group struct {
	branch
	Description string
}

// NewGroup creates a group. An empty description becomes DefaultGroupDescription.
func NewGroup(description string, children ...Child) *Group {
	if description == "" {
		description = DefaultGroupDescription
	}
	return &Group{
		branch:      newBranch(children),
		Description: description,
	}
}

func (g *Group) Type() string { return TypeGroup }

func (g *Group) Compile(id int, ids *BlockIDs) (Element, int, error) {
	children, last, err := g.compileChildren(id, ids)
	if err != nil {
		return nil, 0, err
	}
	return &GroupElement{
		FlowID:      FormatFlowID(id),
		Type:        TypeGroup,
		Description: g.Description,
		Flow:        children,
	}, last, nil
}

func (g *Group) isChild() {}
