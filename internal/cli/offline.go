package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/qflow/internal/presentation/graph"
	"github.com/aretw0/qflow/internal/presentation/tui"
	"github.com/aretw0/qflow/internal/upload"
	"github.com/aretw0/qflow/pkg/adapters/file"
)

// Compile writes the flow document of the definition at path as indented
// JSON, with placeholder block IDs.
func Compile(w io.Writer, path string) error {
	s, err := file.LoadSurvey(path)
	if err != nil {
		return err
	}
	doc, err := upload.Compile(s)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", path, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Graph writes the flow of the definition at path as a Mermaid diagram.
func Graph(w io.Writer, path string) error {
	s, err := file.LoadSurvey(path)
	if err != nil {
		return err
	}
	root, ids, err := upload.Assemble(s)
	if err != nil {
		return fmt.Errorf("failed to assemble %s: %w", path, err)
	}
	_, err = fmt.Fprint(w, graph.GenerateMermaid(root, ids))
	return err
}

// Inspect writes an outline of the definition at path. Unless raw is set
// the Markdown is rendered for the terminal.
func Inspect(w io.Writer, path string, raw bool) error {
	s, err := file.LoadSurvey(path)
	if err != nil {
		return err
	}
	md, err := tui.Outline(s)
	if err != nil {
		return err
	}
	if raw {
		_, err = fmt.Fprint(w, md)
		return err
	}
	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// Validate loads and compiles the definition at path and writes a one-line
// summary.
func Validate(w io.Writer, path string) error {
	s, err := file.LoadSurvey(path)
	if err != nil {
		return err
	}
	plan, err := s.Plan()
	if err != nil {
		return err
	}
	doc, err := upload.Compile(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %d blocks, %d questions, %d flow elements\n",
		s.Header().Name, len(plan.Blocks), plan.Questions(), doc.Properties.Count)
	return err
}
