package graph

import (
	"fmt"
	"strings"
)

// NodeKind selects the shape a node is drawn with.
type NodeKind int

const (
	KindStep NodeKind = iota
	KindPrompt
	KindAction
	KindPlaceholder
	KindTerminal
)

// Node is one box of the flowchart.
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
	Edges []Edge
}

// Edge is a transition, optionally labelled with the answer that takes it.
type Edge struct {
	To    string
	Label string
}

// Overlay contains session data to visualize on the graph.
type Overlay struct {
	Visited []string
	Current string
}

// GenerateMermaid produces a Mermaid flowchart from nodes.
// Shapes: Terminal ((Circle)), Action [[Subroutine]], Prompt [/Parallelogram/], otherwise [Rectangle].
// Placeholders get a dashed "todo" class. Overlay styles are applied when overlay is not nil.
func GenerateMermaid(nodes []Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var todo []string
	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind {
		case KindTerminal:
			opener, closer = "((", "))"
		case KindAction:
			opener, closer = "[[", "]]"
		case KindPrompt:
			opener, closer = "[/", "/]"
		case KindPlaceholder:
			todo = append(todo, safeID)
		}

		label := node.Label
		if label == "" {
			label = node.ID
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer)

		for _, e := range node.Edges {
			safeTo := sanitizeMermaidID(e.To)
			if e.Label == "" {
				fmt.Fprintf(&sb, "    %s --> %s\n", safeID, safeTo)
				continue
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, escapeLabel(e.Label), safeTo)
		}
	}

	if len(todo) > 0 {
		sb.WriteString("\n    classDef todo stroke-dasharray:5 5,color:#888;\n")
		for _, id := range todo {
			fmt.Fprintf(&sb, "    class %s todo;\n", id)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
