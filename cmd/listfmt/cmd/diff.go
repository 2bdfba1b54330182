package cmd

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff returns the unified diff between the source of path and its
// formatted text, empty when they are equal
func unifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
}

// writeDiff writes diff to w, coloring added, removed and hunk lines
func writeDiff(w io.Writer, diff string) error {
	color := useColor(w)
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		if !color {
			b.WriteString(line)
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		var style lipgloss.Style
		switch {
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
			style = pathStyle
		case strings.HasPrefix(body, "@@"):
			style = hunkStyle
		case strings.HasPrefix(body, "+"):
			style = addedStyle
		case strings.HasPrefix(body, "-"):
			style = removedStyle
		default:
			b.WriteString(line)
			continue
		}
		b.WriteString(style.Render(body))
		b.WriteString(line[len(body):])
	}
	_, err := io.WriteString(w, b.String())
	return err
}
