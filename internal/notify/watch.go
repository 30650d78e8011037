package notify

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/errmsg"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/playback"
)

// trackTimeout is how long a track notification stays visible (ms).
const trackTimeout = 5000

// Source is the player state read by Watch.
type Source interface {
	Subscribe() *playback.Subscription
	Metadata() nowplaying.Metadata
}

// Watch announces each newly ready item and every playback error until the
// subscription is closed or ctx is done. Track notifications replace each other
// and the last one is dismissed on return.
func Watch(ctx context.Context, src Source, n Notifier, logger zerolog.Logger) {
	logger = logger.With().Str("component", "notify").Logger()
	sub := src.Subscribe()

	var (
		announced string
		lastID    uint32
	)
	defer func() {
		if err := n.Close(lastID); err != nil {
			logger.Debug().Err(err).Msg("close track notification")
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return

		case s := <-sub.StateChanged:
			if !ready(s) || s.URL == announced {
				continue
			}
			announced = s.URL
			notif := Track(src.Metadata(), s.URL)
			notif.ReplacesID = lastID
			id, err := n.Notify(notif)
			if err != nil {
				logger.Debug().Err(err).Msg("track notification failed")
				continue
			}
			lastID = id

		case e := <-sub.Error:
			if e == nil {
				continue
			}
			if _, err := n.Notify(Error(e)); err != nil {
				logger.Debug().Err(err).Msg("error notification failed")
			}

		case <-sub.CaptionChanged:
		}
	}
}

// ready reports whether an item finished loading without error.
func ready(s playback.State) bool {
	return s.URL != "" && s.Err == nil && !s.Buffering && s.Duration > 0
}

// Track builds the notification for a newly loaded item.
func Track(m nowplaying.Metadata, rawURL string) Notification {
	title := m.Title
	if title == "" {
		title = baseName(rawURL)
	}
	body := strings.Join(nonEmpty(m.Artist, m.Album), " - ")
	return Notification{
		Title:     title,
		Body:      body,
		Icon:      iconPath(m.ArtworkURL),
		Category:  "x-mediakit.track",
		Timeout:   trackTimeout,
		Urgency:   UrgencyLow,
		Transient: true,
	}
}

// Error builds the notification for a playback failure.
func Error(e *playback.Error) Notification {
	op := errmsg.OpMediaLoad
	switch e.Kind {
	case playback.ErrorSeek:
		op = errmsg.OpPlaybackSeek
	case playback.ErrorPreroll:
		op = errmsg.OpPreroll
	case playback.ErrorStatus:
		op = errmsg.OpMediaPlay
	}
	return Notification{
		Title:    "Playback error",
		Body:     errmsg.FormatWith(op, baseName(e.URL), e.Err),
		Icon:     "dialog-error",
		Category: "x-mediakit.error",
		Timeout:  -1,
		Urgency:  UrgencyCritical,
	}
}

// iconPath converts file artwork URLs to the plain paths notification servers expect.
func iconPath(artwork string) string {
	if u, err := url.Parse(artwork); err == nil && u.Scheme == "file" {
		return u.Path
	}
	return artwork
}

func baseName(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return filepath.Base(u.Path)
	}
	return raw
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
