package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/mediakit/internal/errmsg"
	"github.com/llehouerou/mediakit/internal/icons"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/playback"
	"github.com/llehouerou/mediakit/internal/ui/render"
	"github.com/llehouerou/mediakit/internal/ui/styles"
)

// maxCaptionLines caps how many caption lines are shown.
const maxCaptionLines = 2

// State holds everything needed to render the player bar.
type State struct {
	Playback     playback.State
	Metadata     nowplaying.Metadata
	Controls     nowplaying.Controls
	Interval     time.Duration
	SystemPlayer bool
	Autoplay     bool
	ShowCaptions bool
	// QueueIndex and QueueLen place the item in the queue; shown when
	// the queue holds more than one track.
	QueueIndex int
	QueueLen   int
}

// Height returns the number of rows Render produces for s, borders included.
func Height(s State) int {
	rows := 3 // title + progress + status
	if s.ShowCaptions {
		rows += maxCaptionLines
	}
	if s.Playback.Err != nil {
		rows++
	}
	return rows + 2
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	st := styles.T().S()
	innerWidth := max(width-6, 10) // border + padding

	lines := []string{
		renderTitle(s, innerWidth),
		RenderProgressBar(
			s.Playback.Progress,
			s.Playback.BufferProgress,
			s.Playback.Time,
			s.Playback.Duration,
			innerWidth,
			icons.Status(!s.Playback.Paused, s.Playback.IsLoaded()),
		),
	}

	if s.ShowCaptions {
		var captionLines []string
		if c := s.Playback.Caption; c != nil {
			captionLines = render.CaptionLines(c.Text, innerWidth, maxCaptionLines)
		}
		for i := range maxCaptionLines {
			line := ""
			if i < len(captionLines) {
				line = st.Caption.Render(captionLines[i])
			}
			lines = append(lines, render.Center(line, innerWidth))
		}
	}

	if e := s.Playback.Err; e != nil {
		msg := icons.Label(icons.Error(), errmsg.FormatWith(errorOp(e.Kind), e.URL, e.Err))
		lines = append(lines, st.Error.Render(render.TruncateEllipsis(msg, innerWidth)))
	}

	lines = append(lines, renderStatus(s, innerWidth))

	return st.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderTitle(s State, width int) string {
	st := styles.T().S()

	title := s.Metadata.Title
	if title == "" {
		title = s.Playback.URL
	}
	if title == "" {
		return st.Muted.Render("Nothing loaded")
	}
	title = render.Sanitize(title)

	info := render.Sanitize(strings.Join(nonEmpty(s.Metadata.Artist, s.Metadata.Album), " · "))
	if info == "" {
		return st.Title.Render(render.TruncateEllipsis(title, width))
	}

	titleWidth := lipgloss.Width(title)
	if titleWidth+3 >= width {
		return st.Title.Render(render.TruncateEllipsis(title, width))
	}
	info = render.TruncateEllipsis(info, width-titleWidth-3)
	return st.Title.Render(title) + "   " + st.Muted.Render(info)
}

func renderStatus(s State, width int) string {
	st := styles.T().S()
	p := s.Playback

	var left []string
	switch {
	case p.Buffering:
		left = append(left, st.Warning.Render(icons.Label(icons.Buffering(), "buffering")))
	case p.Ended:
		left = append(left, st.Muted.Render("ended"))
	}
	if p.BufferTime > 0 && p.Duration > 0 {
		left = append(left, st.Subtle.Render("buf "+formatDuration(p.BufferTime)))
	}
	if p.CacheSpeed > 0 {
		left = append(left, st.Subtle.Render(humanize.IBytes(uint64(p.CacheSpeed))+"/s"))
	}

	if s.QueueLen > 1 && s.QueueIndex >= 0 {
		left = append(left, st.Muted.Render(fmt.Sprintf("%d/%d", s.QueueIndex+1, s.QueueLen)))
	}

	controls := "skip " + formatInterval(s.Interval)
	if s.Controls == nowplaying.ControlsTrack {
		controls = "tracks"
	}
	system := st.Subtle.Render("system player off")
	if s.SystemPlayer {
		system = st.Success.Render(icons.Label(icons.SystemPlayer(), "system player"))
	}
	right := []string{st.Muted.Render(controls), system}
	if s.Autoplay {
		right = append(right, st.Muted.Render(icons.Label(icons.Autoplay(), "autoplay")))
	}

	return render.Row(strings.Join(left, "  "), strings.Join(right, "  "), width)
}

func errorOp(k playback.ErrorKind) errmsg.Op {
	switch k {
	case playback.ErrorSeek:
		return errmsg.OpPlaybackSeek
	case playback.ErrorPreroll:
		return errmsg.OpPreroll
	case playback.ErrorStatus:
		return errmsg.OpMediaPlay
	default:
		return errmsg.OpMediaLoad
	}
}

func formatInterval(d time.Duration) string {
	if d%time.Minute == 0 && d >= time.Minute {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
