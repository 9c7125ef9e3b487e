package survey

import (
	"encoding/json"
	"maps"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
)

// DefaultName is conventional for surveys under development.
const DefaultName = "Test Survey"

// Option keys understood by the survey-definitions API.
const (
	OptionHeader             = "Header"
	OptionFooter             = "Footer"
	OptionCustomStyles       = "CustomStyles"
	OptionExternalCSS        = "ExternalCSS"
	OptionBackButton         = "BackButton"
	OptionProgressBarDisplay = "ProgressBarDisplay"
)

// Survey is implemented by BasicSurvey, BlockSurvey and FlowSurvey.
type Survey interface {
	// Header returns the name and options shared by every survey kind.
	Header() *Base

	// Plan lists the uploads needed to create the survey's contents.
	Plan() (*Plan, error)
}

// Base holds the name and global options of a survey.
type Base struct {
	Name    string
	Options map[string]any
}

func newBase(name string) Base {
	if name == "" {
		name = DefaultName
	}
	return Base{Name: name, Options: map[string]any{}}
}

// Header returns b.
func (b *Base) Header() *Base { return b }

// SetName replaces the survey name.
func (b *Base) SetName(name string) {
	b.Name = name
}

// SetOptions merges options into the current ones, overwriting equal keys.
func (b *Base) SetOptions(options map[string]any) {
	if b.Options == nil {
		b.Options = map[string]any{}
	}
	maps.Copy(b.Options, options)
}

func (b *Base) set(key string, value any) {
	b.SetOptions(map[string]any{key: value})
}

// SetHeaderHTML sets HTML inserted before the survey on every page.
// Script elements are allowed here.
func (b *Base) SetHeaderHTML(html string) { b.set(OptionHeader, html) }

// SetFooterHTML sets HTML inserted after the survey on every page.
func (b *Base) SetFooterHTML(html string) { b.set(OptionFooter, html) }

// SetCustomCSS sets the survey stylesheet. The API expects it wrapped.
func (b *Base) SetCustomCSS(css string) {
	b.set(OptionCustomStyles, map[string]any{"customCSS": css})
}

// SetExternalCSSURL links a remote stylesheet on every page.
func (b *Base) SetExternalCSSURL(url string) { b.set(OptionExternalCSS, url) }

// SetShowBackButton controls whether participants can go back a page.
// The API stores the flag as a JSON-encoded string.
func (b *Base) SetShowBackButton(show bool) {
	raw, _ := json.Marshal(show)
	b.set(OptionBackButton, string(raw))
}

// SetProgressBarDisplay sets the progress bar mode, e.g. "VerboseText".
func (b *Base) SetProgressBarDisplay(mode string) { b.set(OptionProgressBarDisplay, mode) }

// Plan is the ordered list of uploads for a survey.
type Plan struct {
	// Blocks are uploaded in order.
	Blocks []PlannedBlock

	// IDs receives the identifier of every uploaded block. For flow surveys
	// it is the table returned by flow.CollectDistinctBlocks.
	IDs *flow.BlockIDs

	// Root is set for flow surveys; it is compiled once IDs is complete.
	Root *flow.Root
}

// PlannedBlock is one block upload.
type PlannedBlock struct {
	Block *domain.Block
	// UseDefault places the questions in the survey's default block.
	UseDefault bool
}

// Questions returns the total number of questions (page breaks included).
func (p *Plan) Questions() int {
	n := 0
	for _, pb := range p.Blocks {
		n += len(pb.Block.Questions)
	}
	return n
}
