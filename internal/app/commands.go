package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mediakit/internal/playback"
)

// WatchServiceEvents returns a command that waits for playback events.
// It listens on all subscription channels and converts events to tea.Msg.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case s := <-sub.StateChanged:
			return StateChangedMsg(s)
		case c := <-sub.CaptionChanged:
			return CaptionChangedMsg(c)
		case e := <-sub.Error:
			return PlaybackErrorMsg{Err: e}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// clearNoticeAfter hides the notice with the given version after noticeTimeout.
func clearNoticeAfter(version int) tea.Cmd {
	return tea.Tick(noticeTimeout, func(_ time.Time) tea.Msg {
		return clearNoticeMsg{version: version}
	})
}
