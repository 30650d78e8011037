// Package platform defines the media engine the playback adapter drives.
//
// An Engine is the platform player: it loads items, seeks, prerolls and plays,
// and reports what happens through its Events channel. The adapter never
// touches a concrete player, so tests drive it with Mock.
package platform

import (
	"context"
	"time"
)

// Engine is the contract for a platform media player.
type Engine interface {
	// Replace swaps the current item for url. Loading continues in the
	// background; progress is reported through Events.
	Replace(ctx context.Context, url string) error

	// Duration blocks until the current item is loaded and returns its
	// duration. Items without one, such as live streams, report 0.
	Duration(ctx context.Context) (time.Duration, error)

	// Seek moves to an absolute position and blocks until playback can resume there.
	Seek(ctx context.Context, to time.Duration) error

	// Preroll primes the current item for immediate playback at rate.
	Preroll(ctx context.Context, rate float64) error

	Play() error
	Pause() error

	// Time returns the current playback position.
	Time() time.Duration

	// ConfigureAudioSession applies audio output settings.
	ConfigureAudioSession(s AudioSession) error

	// Events delivers engine notifications. Closed by Close.
	Events() <-chan Event

	Close() error
}
