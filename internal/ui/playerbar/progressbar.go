package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediakit/internal/ui/styles"
)

var (
	filledBlock   = "▓"
	bufferedBlock = "▒"
	emptyBlock    = "░"
)

// RenderProgressBar renders a block-style progress bar with the buffered
// range shown between the played and empty parts.
// Format: ▶  1:23  ▓▓▓▓▒▒░░░░  4:56
func RenderProgressBar(progress, buffered float64, position, duration time.Duration, width int, status string) string {
	posStr := formatDuration(position)
	durStr := "--:--"
	if duration > 0 {
		durStr = formatDuration(duration)
	}

	// Format: "▶  1:23  ▓▓▓░░░  4:56"
	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	filled := blocks(progress, barWidth)
	buffer := max(blocks(buffered, barWidth)-filled, 0)
	empty := barWidth - filled - buffer

	s := styles.T().S()
	bar := s.Played.Render(strings.Repeat(filledBlock, filled)) +
		s.Buffered.Render(strings.Repeat(bufferedBlock, buffer)) +
		s.Subtle.Render(strings.Repeat(emptyBlock, empty))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}

func blocks(ratio float64, width int) int {
	ratio = min(max(ratio, 0), 1)
	return min(int(float64(width)*ratio), width)
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
