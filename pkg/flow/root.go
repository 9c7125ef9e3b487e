package flow

// Root is the entry point of a flow tree. A tree has exactly one.
type Root struct {
	branch
}

// NewRoot creates a root holding children in order.
func NewRoot(children ...Child) *Root {
	return &Root{branch: newBranch(children)}
}

func (r *Root) Type() string { return TypeRoot }

func (r *Root) Compile(id int, ids *BlockIDs) (Element, int, error) {
	children, last, err := r.compileChildren(id, ids)
	if err != nil {
		return nil, 0, err
	}
	return &RootElement{
		FlowID: FormatFlowID(id),
		Type:   TypeRoot,
		Flow:   children,
	}, last, nil
}

// Finalize compiles the whole tree starting at FirstFlowID and attaches the
// Properties summary. It is the entry point callers should use; the result
// can be sent as-is to the platform's update flow call.
func (r *Root) Finalize(ids *BlockIDs) (*RootElement, error) {
	el, last, err := r.Compile(FirstFlowID, ids)
	if err != nil {
		return nil, err
	}
	doc := el.(*RootElement)
	doc.Properties = &Properties{
		Count:            last,
		RemovedFieldsets: []any{},
	}
	return doc, nil
}
