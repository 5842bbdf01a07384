package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer that picks a light or dark style from the terminal.
func NewRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render, nil
}

// ResultMarkdown formats a flow result as a heading followed by a fenced block.
func ResultMarkdown(title, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	if strings.TrimSpace(body) == "" {
		b.WriteString("_no output_\n")
		return b.String()
	}
	b.WriteString("```\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n```\n")
	return b.String()
}
