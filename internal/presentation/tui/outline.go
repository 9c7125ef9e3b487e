package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/aretw0/qflow/pkg/survey"
)

// Outline describes a survey as Markdown: its options, every block with
// its questions, and the flow tree when there is one.
func Outline(s survey.Survey) (string, error) {
	plan, err := s.Plan()
	if err != nil {
		return "", err
	}
	head := s.Header()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", head.Name)
	fmt.Fprintf(&sb, "**Kind**: %s | **Blocks**: %d | **Questions**: %d\n\n", kind(s), len(plan.Blocks), plan.Questions())

	if len(head.Options) > 0 {
		sb.WriteString("## Options\n\n")
		for _, k := range slices.Sorted(maps.Keys(head.Options)) {
			fmt.Fprintf(&sb, "- `%s`: %s\n", k, summarize(head.Options[k]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Blocks\n\n")
	for i, pb := range plan.Blocks {
		title := pb.Block.Description
		if pb.UseDefault {
			title = "Default block"
		}
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, title)
		if len(pb.Block.Questions) == 0 {
			sb.WriteString("_empty_\n\n")
			continue
		}
		n := 0
		for _, q := range pb.Block.Questions {
			if q.IsPageBreak() {
				sb.WriteString("\n---\n\n")
				continue
			}
			n++
			fmt.Fprintf(&sb, "%d. %s\n", n, questionLine(q))
		}
		sb.WriteString("\n")
	}

	if plan.Root != nil {
		sb.WriteString("## Flow\n\n")
		_ = flow.Walk(plan.Root, func(n flow.Node, id, depth int) error {
			fmt.Fprintf(&sb, "%s- `%s` %s\n", strings.Repeat("  ", depth), flow.FormatFlowID(id), nodeLine(n))
			return nil
		})
	}
	return sb.String(), nil
}

func kind(s survey.Survey) string {
	switch s.(type) {
	case *survey.FlowSurvey:
		return "flow"
	case *survey.BlockSurvey:
		return "blocks"
	default:
		return "basic"
	}
}

func questionLine(q domain.Question) string {
	line := "**" + q.Type() + "**"
	if tag := q.ExportTag(); tag != "" {
		line += " `" + tag + "`"
	}
	if text, ok := q.Data["QuestionText"].(string); ok && text != "" {
		line += " " + summarize(text)
	}
	return line
}

func nodeLine(n flow.Node) string {
	switch node := n.(type) {
	case *flow.Group:
		return "Group: " + node.Description
	case *flow.RandomSubset:
		line := fmt.Sprintf("Randomizer: %d of %d", node.SubSet, len(node.Children()))
		if node.EvenPresentation {
			line += ", evenly presented"
		}
		return line
	case *flow.BlockRef:
		if b := node.Block(); b != nil {
			return "Block: " + b.Description
		}
		return "Block: (nil)"
	case *flow.Terminator:
		return "End of Survey"
	default:
		return n.Type()
	}
}

// summarize keeps option and question text to one short line.
func summarize(v any) string {
	s := strings.Join(strings.Fields(fmt.Sprint(v)), " ")
	if r := []rune(s); len(r) > 60 {
		s = string(r[:57]) + "..."
	}
	return s
}
