// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpMediaLoad     Op = "load media"
	OpMediaPlay     Op = "play media"
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpPreroll       Op = "prepare playback"
	OpTrackChange   Op = "change track"

	// Caption operations
	OpCaptionLoad  Op = "load captions"
	OpCaptionFetch Op = "download captions"
	OpLyricsFetch  Op = "fetch synced lyrics"

	// Platform operations
	OpAudioSession Op = "configure audio session"
	OpNowPlaying   Op = "register now-playing controls"
	OpEngineStart  Op = "start media engine"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
