// Package app contains the terminal view around a playback.Player.
package app

import (
	"time"

	"github.com/llehouerou/mediakit/internal/playback"
)

// StateChangedMsg carries the latest playback snapshot.
type StateChangedMsg playback.State

// CaptionChangedMsg is sent when the active caption changes.
type CaptionChangedMsg playback.CaptionChange

// PlaybackErrorMsg is sent when a load, seek or status failure is reported.
type PlaybackErrorMsg struct {
	Err *playback.Error
}

// ServiceClosedMsg is sent once the player has been closed.
type ServiceClosedMsg struct{}

// NoticeMsg shows a transient message in the footer.
type NoticeMsg string

// clearNoticeMsg hides the notice set at the given version.
type clearNoticeMsg struct {
	version int
}

// noticeTimeout is how long a notice stays on screen.
const noticeTimeout = 3 * time.Second
