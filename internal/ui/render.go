package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/getlawrence/nodediff/internal/codegen"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderResult returns the text output for one generation result.
func RenderResult(res *codegen.Result) string {
	var b strings.Builder
	if res.Empty() {
		b.WriteString(okStyle.Render("✓ No structural difference"))
		b.WriteString("\n")
		return b.String()
	}

	if res.Hook != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Hook:"), headerStyle.Render(res.Hook))
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Divergence:"), res.Divergence)

	if len(res.Bindings) > 0 {
		b.WriteString(labelStyle.Render("Bindings:"))
		b.WriteString("\n")
		names := make([]string, 0, len(res.Bindings))
		for name := range res.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  $%s <- %s\n", name, res.Bindings[name])
		}
	}

	b.WriteString("\n")
	for _, stmt := range res.Statements {
		b.WriteString(codeStyle.Render(stmt))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBatch returns the text output for a batch run, one section per
// fixture followed by a summary line.
func RenderBatch(results []codegen.BatchResult) string {
	var b strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(&b, "%s %s\n  %s\n\n", errStyle.Render("✗"), headerStyle.Render(r.Fixture), r.Err)
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", okStyle.Render("✓"), headerStyle.Render(r.Fixture))
		for _, line := range strings.Split(strings.TrimRight(RenderResult(r.Result), "\n"), "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d fixture(s), %d failed\n", len(results), failed)
	return b.String()
}
