package flow

// RandomSubset presents SubSet of its children, chosen at random for each
// participant. With EvenPresentation the platform balances how often each
// child is shown across participants instead of drawing independently.
type RandomSubset struct {
	branch
	SubSet           int
	EvenPresentation bool
}

// NewRandomSubset creates a randomizer over children. More children may be
// appended later.
func NewRandomSubset(subset int, evenPresentation bool, children ...Child) *RandomSubset {
	return &RandomSubset{
		branch:           newBranch(children),
		SubSet:           subset,
		EvenPresentation: evenPresentation,
	}
}

func (r *RandomSubset) Type() string { return TypeBlockRandomizer }

func (r *RandomSubset) Compile(id int, ids *BlockIDs) (Element, int, error) {
	children, last, err := r.compileChildren(id, ids)
	if err != nil {
		return nil, 0, err
	}
	return &RandomizerElement{
		FlowID:           FormatFlowID(id),
		Type:             TypeBlockRandomizer,
		SubSet:           r.SubSet,
		EvenPresentation: r.EvenPresentation,
		Flow:             children,
	}, last, nil
}

func (r *RandomSubset) isChild() {}
