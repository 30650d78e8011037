package app

import (
	"strings"

	"github.com/llehouerou/mediakit/internal/ui/overlay"
	"github.com/llehouerou/mediakit/internal/ui/playerbar"
	"github.com/llehouerou/mediakit/internal/ui/render"
	"github.com/llehouerou/mediakit/internal/ui/styles"
)

// defaultWidth is used before the first window size message.
const defaultWidth = 80

// View implements tea.Model.
func (m Model) View() string {
	if m.closed {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	bar := playerbar.Render(m.barState(), width)

	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = styles.T().S().Muted.Render(" " + render.TruncateEllipsis(m.notice, width-1))
	}
	view := strings.Join([]string{bar, footer}, "\n")

	if m.showHelp {
		full := m.help
		full.ShowAll = true
		full.Width = width - 6 // border + padding
		box := styles.T().S().Panel.Render(full.View(m.keys))
		view = overlay.Center(view, box, width, m.height)
	}
	return view
}

func (m Model) barState() playerbar.State {
	idx, total := m.player.QueuePosition()
	return playerbar.State{
		Playback:     m.state,
		Metadata:     m.metadata,
		Controls:     m.player.Controls(),
		Interval:     m.player.SeekInterval(),
		SystemPlayer: m.player.ShowInSystemPlayer(),
		Autoplay:     m.player.Autoplay(),
		ShowCaptions: m.showCaptions,
		QueueIndex:   idx,
		QueueLen:     total,
	}
}
