package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/qflow/pkg/flow"
)

// GenerateMermaid produces a Mermaid flowchart of a flow tree. Node IDs are
// the flow identifiers the tree compiles to. It applies semantic styling:
// - Root: ((Circle))
// - Group: [Rectangle]
// - BlockRandomizer: {Rhombus}, with dotted edges to the candidates
// - Block: [[Subroutine]]
// - EndSurvey: ([Stadium])
//
// When ids is not nil, block labels carry their platform ID and blocks
// without one are styled as missing.
func GenerateMermaid(root flow.Node, ids *flow.BlockIDs) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var missing []string
	stack := []int{}
	types := map[int]string{}

	_ = flow.Walk(root, func(n flow.Node, id, depth int) error {
		safeID := flow.FormatFlowID(id)
		types[id] = n.Type()

		opener, closer := "[", "]"
		var label string
		switch node := n.(type) {
		case *flow.Root:
			opener, closer = "((", "))"
			label = "Root"
		case *flow.Group:
			label = node.Description
		case *flow.RandomSubset:
			opener, closer = "{", "}"
			label = fmt.Sprintf("Random %d of %d", node.SubSet, len(node.Children()))
			if node.EvenPresentation {
				label += " (even)"
			}
		case *flow.BlockRef:
			opener, closer = "[[", "]]"
			label = blockLabel(node, ids)
			if ids != nil {
				if _, ok := ids.Lookup(node.Block()); !ok {
					missing = append(missing, safeID)
				}
			}
		case *flow.Terminator:
			opener, closer = "([", "])"
			label = "End of Survey"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)

		stack = append(stack[:depth], id)
		if depth > 0 {
			parent := stack[depth-1]
			arrow := "-->"
			if types[parent] == flow.TypeBlockRandomizer {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", flow.FormatFlowID(parent), arrow, safeID)
		}
		return nil
	})

	if len(missing) > 0 {
		sb.WriteString("\n    %% Unresolved blocks\n")
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		for _, id := range missing {
			fmt.Fprintf(&sb, "    class %s missing;\n", id)
		}
	}

	return sb.String()
}

func blockLabel(ref *flow.BlockRef, ids *flow.BlockIDs) string {
	b := ref.Block()
	if b == nil {
		return "(nil block)"
	}
	label := b.Description
	if id, ok := ids.Lookup(b); ok {
		label += " <br/> " + id
	}
	return label
}

// escape replaces double quotes, which would end the Mermaid label.
func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
