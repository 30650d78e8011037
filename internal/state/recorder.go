package state

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/playback"
)

const (
	// minResume is the earliest position worth resuming from.
	minResume = 10 * time.Second
	// endMargin counts positions this close to the end as finished.
	endMargin = 15 * time.Second
	// saveStep is the smallest position change that is written again.
	saveStep = time.Second
)

// Subscriber is the player surface read by Record.
type Subscriber interface {
	Subscribe() *playback.Subscription
}

// Resume returns the saved start position for url, or 0.
func (m *Manager) Resume(url string) time.Duration {
	p, ok, err := m.Position(url)
	if err != nil || !ok {
		return 0
	}
	return p.Time
}

// Record saves the playback position of each item until the subscription
// is closed or ctx is done. Finished items are forgotten.
func Record(ctx context.Context, src Subscriber, m *Manager, logger zerolog.Logger) {
	logger = logger.With().Str("component", "state").Logger()
	sub := src.Subscribe()
	saved := make(map[string]time.Duration)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case <-sub.CaptionChanged:
		case <-sub.Error:
		case s := <-sub.StateChanged:
			switch action(s) {
			case actionForget:
				if _, ok := saved[s.URL]; ok || s.Ended {
					logger.Debug().Str("url", s.URL).Msg("forget resume position")
				}
				delete(saved, s.URL)
				m.Forget(s.URL)
			case actionSave:
				if last, ok := saved[s.URL]; ok && absDiff(last, s.Time) < saveStep {
					continue
				}
				saved[s.URL] = s.Time
				m.SavePosition(s.URL, s.Time, s.Duration)
			}
		}
	}
}

type recordAction int

const (
	actionNone recordAction = iota
	actionSave
	actionForget
)

func action(s playback.State) recordAction {
	if s.URL == "" || s.Err != nil || s.Buffering || s.Duration <= 0 {
		return actionNone
	}
	if s.Ended || s.Duration-s.Time <= endMargin {
		return actionForget
	}
	if s.Time < minResume {
		return actionNone
	}
	return actionSave
}

func absDiff(a, b time.Duration) time.Duration {
	if a > b {
		return a - b
	}
	return b - a
}
