package question

import (
	"fmt"
	"strings"
)

// Script accumulates question JavaScript attached to SurveyEngine events.
//
//	js := question.NewScript().
//		OnLoad(`console.log("loaded!");`).
//		OnSubmit(`console.log("submitting!");`).
//		String()
type Script struct {
	parts []string
}

// NewScript creates an empty script.
func NewScript() *Script {
	return &Script{}
}

// OnLoad runs js when the page first loads.
func (s *Script) OnLoad(js string) *Script {
	// The engine method really is addOnload, lowercase l.
	return s.add("load", js)
}

// OnReady runs js when the page has finished loading.
func (s *Script) OnReady(js string) *Script {
	return s.add("Ready", js)
}

// OnSubmit runs js when the page is submitted, even if validation then fails.
func (s *Script) OnSubmit(js string) *Script {
	return s.add("PageSubmit", js, "type")
}

// OnUnload runs js when the page unloads.
func (s *Script) OnUnload(js string) *Script {
	return s.add("Unload", js)
}

// OnClick runs js when the question is clicked, via questionclick.
func (s *Script) OnClick(js string) *Script {
	return s.OnLoad(fmt.Sprintf("this.questionclick = function(event, element) {\n%s\n};", js))
}

func (s *Script) add(method, js string, args ...string) *Script {
	s.parts = append(s.parts, fmt.Sprintf(
		"Qualtrics.SurveyEngine.addOn%s(function(%s){\n%s\n});",
		method, strings.Join(args, ","), js,
	))
	return s
}

// String joins the attached snippets.
func (s *Script) String() string {
	return strings.Join(s.parts, "\n\n")
}

// SetEmbeddedData returns JavaScript storing the value of expr under key.
func SetEmbeddedData(key, expr string) string {
	return fmt.Sprintf("Qualtrics.SurveyEngine.setEmbeddedData(%q,%s);", key, expr)
}

// GetEmbeddedData returns the piped-text expression reading key.
func GetEmbeddedData(key string) string {
	return "${e://Field/" + key + "}"
}
