package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const wrapAt = 78

var (
	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	paragraphStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

// keyword renders a highlighted word for help text and prompts.
func keyword(s string) string {
	return keywordStyle.Render(s)
}

// paragraph wraps and lightly indents a block of user-facing text.
func paragraph(s string) string {
	return paragraphStyle.Render(
		strings.TrimSpace(indent.String(wordwrap.String(s, wrapAt), 2)),
	)
}
