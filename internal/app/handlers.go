package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mediakit/internal/errmsg"
	"github.com/llehouerou/mediakit/internal/keymap"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/playback"
)

// longSeek is the step of the long seek bindings.
const longSeek = time.Minute

// intervalSteps are the skip intervals cycled by the interval bindings.
var intervalSteps = []time.Duration{
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Only global keys act over the help overlay; any other key closes it.
		if a := m.resolver.Resolve(msg.String(), keymap.ContextGlobal); a != "" {
			return m.handleAction(a)
		}
		m.showHelp = false
		return m, nil
	}
	action := m.resolver.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	return m.handleAction(action)
}

func (m Model) handleAction(a keymap.Action) (tea.Model, tea.Cmd) {
	p := m.player
	switch a {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return m, nil

	case keymap.ActionPlayPause:
		return m.report(errmsg.OpMediaPlay, p.Toggle())
	case keymap.ActionSeekForward:
		return m.report(errmsg.OpPlaybackSeek, p.SkipForward(0))
	case keymap.ActionSeekBack:
		return m.report(errmsg.OpPlaybackSeek, p.SkipBackward(0))
	case keymap.ActionSeekForwardLong:
		return m.report(errmsg.OpPlaybackSeek, p.SkipForward(longSeek))
	case keymap.ActionSeekBackLong:
		return m.report(errmsg.OpPlaybackSeek, p.SkipBackward(longSeek))
	case keymap.ActionRestart:
		return m.report(errmsg.OpPlaybackSeek, p.SeekTo(0))
	case keymap.ActionNextTrack:
		return m.report(errmsg.OpTrackChange, p.NextTrack())
	case keymap.ActionPrevTrack:
		return m.report(errmsg.OpTrackChange, p.PreviousTrack())
	case keymap.ActionReload:
		url := p.Snapshot().URL
		if url == "" {
			return m.setNotice("Nothing to reload")
		}
		p.SetURL(url)
		return m, nil

	case keymap.ActionToggleSystemPlayer:
		p.SetShowInSystemPlayer(!p.ShowInSystemPlayer())
		if p.ShowInSystemPlayer() {
			return m.setNotice("System player controls on")
		}
		return m.setNotice("System player controls off")
	case keymap.ActionCycleControls:
		next := nowplaying.ControlsTrack
		if p.Controls() == nowplaying.ControlsTrack {
			next = nowplaying.ControlsSkip
		}
		p.SetControls(next)
		return m.setNotice("Controls: " + next.String())
	case keymap.ActionIntervalUp:
		d := stepInterval(p.SeekInterval(), 1)
		p.SetSeekInterval(d)
		return m.setNotice(fmt.Sprintf("Skip interval: %s", d))
	case keymap.ActionIntervalDown:
		d := stepInterval(p.SeekInterval(), -1)
		p.SetSeekInterval(d)
		return m.setNotice(fmt.Sprintf("Skip interval: %s", d))
	case keymap.ActionToggleAutoplay:
		p.SetAutoplay(!p.Autoplay())
		if p.Autoplay() {
			return m.setNotice("Autoplay on")
		}
		return m.setNotice("Autoplay off")

	case keymap.ActionToggleCaptions:
		m.showCaptions = !m.showCaptions
		return m, nil
	}
	return m, nil
}

// report turns an action error into a notice.
func (m Model) report(op errmsg.Op, err error) (tea.Model, tea.Cmd) {
	switch {
	case err == nil:
		return m, nil
	case errors.Is(err, playback.ErrNoTrack):
		return m.setNotice("No track")
	case errors.Is(err, playback.ErrClosed):
		return m, nil
	}
	m.logger.Warn().Err(err).Str("op", string(op)).Msg("action failed")
	return m.setNotice(errmsg.Format(op, err))
}

// stepInterval moves d to the next (dir > 0) or previous step.
// Values between steps snap to the neighbouring step in that direction.
func stepInterval(d time.Duration, dir int) time.Duration {
	if dir > 0 {
		for _, s := range intervalSteps {
			if s > d {
				return s
			}
		}
		return intervalSteps[len(intervalSteps)-1]
	}
	for _, s := range slices.Backward(intervalSteps) {
		if s < d {
			return s
		}
	}
	return intervalSteps[0]
}
