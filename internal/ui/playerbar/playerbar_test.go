package playerbar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediakit/internal/caption"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/playback"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{83 * time.Second, "1:23"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{15 * time.Second, "15s"},
		{90 * time.Second, "90s"},
		{2 * time.Minute, "2m"},
	}
	for _, tt := range tests {
		if got := formatInterval(tt.d); got != tt.want {
			t.Errorf("formatInterval(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		ratio float64
		width int
		want  int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{1.5, 10, 10},
		{-0.2, 10, 0},
	}
	for _, tt := range tests {
		if got := blocks(tt.ratio, tt.width); got != tt.want {
			t.Errorf("blocks(%v, %d) = %d, want %d", tt.ratio, tt.width, got, tt.want)
		}
	}
}

func TestRenderProgressBar_Width(t *testing.T) {
	bar := RenderProgressBar(0.25, 0.5, 25*time.Second, 100*time.Second, 60, "▶")
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("width = %d, want 60", w)
	}
	if !strings.HasPrefix(bar, "▶") {
		t.Errorf("bar = %q, want status icon", bar)
	}
	if !strings.Contains(bar, "1:40") {
		t.Errorf("bar = %q, want duration", bar)
	}
}

func TestRenderProgressBar_Paused(t *testing.T) {
	bar := RenderProgressBar(0, 0, 0, 0, 60, "⏸")
	if !strings.HasPrefix(bar, "⏸") {
		t.Errorf("bar = %q, want status icon", bar)
	}
	if !strings.Contains(bar, "--:--") {
		t.Errorf("bar = %q, want unknown duration placeholder", bar)
	}
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	bar := RenderProgressBar(0.5, 0.5, time.Minute, 2*time.Minute, 10, "▶")
	if strings.Contains(bar, filledBlock) {
		t.Errorf("narrow bar = %q, want times only", bar)
	}
	if !strings.Contains(bar, "1:00 / 2:00") {
		t.Errorf("narrow bar = %q, want position / duration", bar)
	}
}

func TestRender(t *testing.T) {
	s := State{
		Playback: playback.State{
			URL:      "file:///music/song.flac",
			Time:     30 * time.Second,
			Duration: 3 * time.Minute,
			Progress: 1.0 / 6,
			Caption:  &caption.Caption{Start: 29 * time.Second, End: 32 * time.Second, Text: "hello there"},
		},
		Metadata:     nowplaying.Metadata{Title: "Song", Artist: "Artist"},
		Interval:     15 * time.Second,
		SystemPlayer: true,
		ShowCaptions: true,
	}

	out := Render(s, 80)

	for _, want := range []string{"Song", "Artist", "hello there", "skip 15s", "system player", "0:30", "3:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if got, want := lipgloss.Height(out), Height(s); got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 80 {
			t.Errorf("line %d width = %d, want 80", i, w)
		}
	}
}

func TestRender_TitleFallsBackToURL(t *testing.T) {
	s := State{Playback: playback.State{URL: "https://example.com/a.mp3", Paused: true}}
	if out := Render(s, 80); !strings.Contains(out, "https://example.com/a.mp3") {
		t.Errorf("Render() = %q, want URL as title", out)
	}
}

func TestRender_NothingLoaded(t *testing.T) {
	if out := Render(State{}, 80); !strings.Contains(out, "Nothing loaded") {
		t.Errorf("Render() = %q, want placeholder", out)
	}
}

func TestRender_Error(t *testing.T) {
	s := State{Playback: playback.State{
		URL: "a.mp4",
		Err: &playback.Error{Kind: playback.ErrorAsset, URL: "a.mp4", Err: errors.New("no such file")},
	}}
	out := Render(s, 100)
	if !strings.Contains(out, "no such file") {
		t.Errorf("Render() = %q, want error message", out)
	}
	if got, want := lipgloss.Height(out), Height(s); got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}

func TestRender_Status(t *testing.T) {
	s := State{
		Playback: playback.State{URL: "a.mp4", Buffering: true, CacheSpeed: 2048},
		Controls: nowplaying.ControlsTrack,
		Autoplay: true,
	}
	out := Render(s, 100)
	for _, want := range []string{"buffering", "2.0 KiB/s", "tracks", "system player off", "autoplay"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestRender_QueuePosition(t *testing.T) {
	s := State{Playback: playback.State{URL: "a.mp4"}, QueueIndex: 1, QueueLen: 3}
	if out := Render(s, 100); !strings.Contains(out, "2/3") {
		t.Errorf("Render() missing queue position:\n%s", out)
	}

	s.QueueLen = 1
	s.QueueIndex = 0
	if out := Render(s, 100); strings.Contains(out, "1/1") {
		t.Errorf("single-item queue should not show a position:\n%s", out)
	}
}

func TestErrorOp(t *testing.T) {
	tests := []struct {
		kind playback.ErrorKind
		want string
	}{
		{playback.ErrorAsset, "load media"},
		{playback.ErrorSeek, "seek"},
	}
	for _, tt := range tests {
		if got := string(errorOp(tt.kind)); !strings.Contains(got, tt.want) {
			t.Errorf("errorOp(%v) = %q, want containing %q", tt.kind, got, tt.want)
		}
	}
}
