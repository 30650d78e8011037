// Package overlay draws a box on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Center draws box centered over base. The base is padded to width columns
// and height rows first. Width and height of 0 use the base's own size.
// Styled text is handled on both sides.
func Center(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	if width <= 0 {
		width = maxWidth(baseLines)
	}
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	boxWidth := maxWidth(boxLines)
	top := max((len(baseLines)-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, boxLine := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = splice(baseLines[row], boxLine, left, width)
	}
	return strings.Join(baseLines, "\n")
}

// splice replaces the columns of line starting at col with content.
func splice(line, content string, col, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}

	end := col + ansi.StringWidth(content)
	result := ansi.Cut(line, 0, col) + content
	if end < width {
		result += ansi.Cut(line, end, width)
	}
	return result
}

func maxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
