package dto

// SurveyDefinition is the file representation of a survey.
// It uses "mapstructure" tags to match the YAML/JSON keys.
type SurveyDefinition struct {
	Name      string        `json:"name" mapstructure:"name"`
	Options   Options       `json:"options" mapstructure:"options"`
	Questions []Question    `json:"questions" mapstructure:"questions"`
	Blocks    []Block       `json:"blocks" mapstructure:"blocks"`
	Flow      []FlowElement `json:"flow" mapstructure:"flow"`
}

// Options are the global survey settings. Unset fields are left alone.
type Options struct {
	Header      *string        `json:"header" mapstructure:"header"`
	Footer      *string        `json:"footer" mapstructure:"footer"`
	CustomCSS   *string        `json:"custom_css" mapstructure:"custom_css"`
	ExternalCSS *string        `json:"external_css" mapstructure:"external_css"`
	BackButton  *bool          `json:"back_button" mapstructure:"back_button"`
	ProgressBar *string        `json:"progress_bar" mapstructure:"progress_bar"`
	Raw         map[string]any `json:"raw" mapstructure:"raw"`
}

// Block is a named group of questions. ID is local to the file and is how
// flow elements refer to the block.
type Block struct {
	ID          string     `json:"id" mapstructure:"id"`
	Description string     `json:"description" mapstructure:"description"`
	Questions   []Question `json:"questions" mapstructure:"questions"`
}

// Question describes one question. Which fields apply depends on Type.
type Question struct {
	Type          string         `json:"type" mapstructure:"type"`
	Tag           string         `json:"tag" mapstructure:"tag"`
	Text          string         `json:"text" mapstructure:"text"`
	Script        string         `json:"script" mapstructure:"script"`
	ForceResponse bool           `json:"force_response" mapstructure:"force_response"`
	Size          string         `json:"size" mapstructure:"size"`
	Options       []string       `json:"options" mapstructure:"options"`
	Selection     string         `json:"selection" mapstructure:"selection"`
	RecodeValues  map[string]any `json:"recode_values" mapstructure:"recode_values"`
	Statements    []string       `json:"statements" mapstructure:"statements"`
	Scale         []string       `json:"scale" mapstructure:"scale"`
	Labels        []string       `json:"labels" mapstructure:"labels"`
	Count         int            `json:"count" mapstructure:"count"`
	Min           float64        `json:"min" mapstructure:"min"`
	Max           float64        `json:"max" mapstructure:"max"`
	Selector      string         `json:"selector" mapstructure:"selector"`
	Total         float64        `json:"total" mapstructure:"total"`
	Data          map[string]any `json:"data" mapstructure:"data"`
}

// FlowElement is one node of a flow tree.
type FlowElement struct {
	Type             string        `json:"type" mapstructure:"type"`
	Block            string        `json:"block" mapstructure:"block"`
	Description      string        `json:"description" mapstructure:"description"`
	SubSet           int           `json:"subset" mapstructure:"subset"`
	EvenPresentation bool          `json:"even_presentation" mapstructure:"even_presentation"`
	Flow             []FlowElement `json:"flow" mapstructure:"flow"`
}
