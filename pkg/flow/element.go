package flow

// Element is a compiled flow document. Field names and order follow the
// platform's wire format; a container with no children omits Flow entirely,
// since an absent key marks a leaf and an empty array does not.
type Element interface {
	ElementID() string
	ElementType() string
	Elements() []Element
}

// Properties is attached to the root document only.
type Properties struct {
	Count            int   `json:"Count"`
	RemovedFieldsets []any `json:"RemovedFieldsets"`
}

type RootElement struct {
	FlowID     string      `json:"FlowID"`
	Type       string      `json:"Type"`
	Flow       []Element   `json:"Flow,omitempty"`
	Properties *Properties `json:"Properties,omitempty"`
}

type GroupElement struct {
	FlowID      string    `json:"FlowID"`
	Type        string    `json:"Type"`
	Description string    `json:"Description"`
	Flow        []Element `json:"Flow,omitempty"`
}

type RandomizerElement struct {
	FlowID           string    `json:"FlowID"`
	Type             string    `json:"Type"`
	SubSet           int       `json:"SubSet"`
	EvenPresentation bool      `json:"EvenPresentation"`
	Flow             []Element `json:"Flow,omitempty"`
}

type BlockElement struct {
	FlowID   string `json:"FlowID"`
	Type     string `json:"Type"`
	ID       string `json:"ID"`
	Autofill []any  `json:"Autofill"`
}

type EndSurveyElement struct {
	FlowID string `json:"FlowID"`
	Type   string `json:"Type"`
}

func (e *RootElement) ElementID() string   { return e.FlowID }
func (e *RootElement) ElementType() string { return e.Type }
func (e *RootElement) Elements() []Element { return e.Flow }

func (e *GroupElement) ElementID() string   { return e.FlowID }
func (e *GroupElement) ElementType() string { return e.Type }
func (e *GroupElement) Elements() []Element { return e.Flow }

func (e *RandomizerElement) ElementID() string   { return e.FlowID }
func (e *RandomizerElement) ElementType() string { return e.Type }
func (e *RandomizerElement) Elements() []Element { return e.Flow }

func (e *BlockElement) ElementID() string   { return e.FlowID }
func (e *BlockElement) ElementType() string { return e.Type }
func (e *BlockElement) Elements() []Element { return nil }

func (e *EndSurveyElement) ElementID() string   { return e.FlowID }
func (e *EndSurveyElement) ElementType() string { return e.Type }
func (e *EndSurveyElement) Elements() []Element { return nil }
