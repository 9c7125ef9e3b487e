package flow

// Terminator ends the survey for a participant who reaches it, as if the
// rest of the flow had been traversed.
type Terminator struct{}

// NewTerminator creates an end-of-survey element.
func NewTerminator() *Terminator {
	return &Terminator{}
}

func (t *Terminator) Type() string { return TypeEndSurvey }

func (t *Terminator) Children() []Node { return nil }

func (t *Terminator) BlockRefs() []*BlockRef { return nil }

func (t *Terminator) Compile(id int, _ *BlockIDs) (Element, int, error) {
	return &EndSurveyElement{
		FlowID: FormatFlowID(id),
		Type:   TypeEndSurvey,
	}, id, nil
}

func (t *Terminator) isNode()  {}
func (t *Terminator) isChild() {}
