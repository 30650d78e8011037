//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/nowplaying"
)

// seekJump is the elapsed-time discontinuity reported as a Seeked signal.
const seekJump = 2 * time.Second

// Center exposes now-playing info and remote commands over MPRIS.
type Center struct {
	server *server.Server
	events *events.EventHandler
	logger zerolog.Logger

	mu       sync.Mutex
	table    nowplaying.Table
	interval time.Duration
	info     *nowplaying.Info
}

// New creates the MPRIS center and starts serving it on the session bus.
func New(name string, logger zerolog.Logger) (*Center, error) {
	c := newCenter(logger)
	c.server = server.NewServer(name, &rootAdapter{identity: name}, &playerAdapter{c: c})
	c.events = events.NewEventHandler(c.server)

	go func() {
		if err := c.server.Listen(); err != nil {
			c.logger.Error().Err(err).Msg("mpris server stopped")
		}
	}()
	return c, nil
}

func newCenter(logger zerolog.Logger) *Center {
	return &Center{logger: logger.With().Str("component", "mpris").Logger()}
}

// Close stops the server and releases D-Bus resources.
func (c *Center) Close() error {
	if c.server == nil {
		return nil
	}
	return c.server.Stop()
}

func (c *Center) SetHandlers(t nowplaying.Table) {
	c.mu.Lock()
	c.table = t
	c.mu.Unlock()
	c.logger.Debug().Int("commands", len(t)).Msg("handlers replaced")
}

func (c *Center) SetPreferredSkipInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
}

func (c *Center) SetInfo(info *nowplaying.Info) {
	c.mu.Lock()
	prev := c.info
	if info != nil {
		cp := *info
		info = &cp
	}
	c.info = info
	c.mu.Unlock()

	if c.events == nil {
		return
	}
	var next nowplaying.Info
	if info != nil {
		next = *info
	}
	var old nowplaying.Info
	if prev != nil {
		old = *prev
	}
	if old.Status != next.Status {
		c.events.Player.OnPlayPause()
	}
	if old.Metadata != next.Metadata || old.URL != next.URL || old.Duration != next.Duration {
		c.events.Player.OnTitle()
	}
	if jumped(old, next) {
		c.events.Player.OnSeek(types.Microseconds(next.Elapsed.Microseconds()))
	}
}

// jumped reports an elapsed change that playback alone cannot explain.
func jumped(old, next nowplaying.Info) bool {
	if old.URL != next.URL {
		return false
	}
	d := next.Elapsed - old.Elapsed
	return d < 0 || d > seekJump
}

func (c *Center) snapshot() (nowplaying.Table, time.Duration, nowplaying.Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var info nowplaying.Info
	if c.info != nil {
		info = *c.info
	}
	return c.table, c.interval, info
}

// dispatch runs the handler outside the lock so it can call back into the center.
func (c *Center) dispatch(req nowplaying.Request) error {
	t, _, _ := c.snapshot()
	if err := t.Dispatch(req); err != nil {
		c.logger.Warn().Err(err).Str("command", req.Command.String()).Msg("remote command failed")
		return err
	}
	return nil
}

func (c *Center) has(cmd nowplaying.Command) bool {
	t, _, _ := c.snapshot()
	return t.Has(cmd)
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	identity string
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return r.identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "video/mp4", "video/webm"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter by
// translating MPRIS calls into now-playing commands.
type playerAdapter struct {
	c *Center
}

// Next goes to the next track, or skips forward when skip controls are bound.
func (p *playerAdapter) Next() error {
	if p.c.has(nowplaying.CommandNextTrack) {
		return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandNextTrack})
	}
	_, interval, _ := p.c.snapshot()
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandSkipForward, Interval: interval})
}

// Previous goes to the previous track, or skips backward.
func (p *playerAdapter) Previous() error {
	if p.c.has(nowplaying.CommandPreviousTrack) {
		return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandPreviousTrack})
	}
	_, interval, _ := p.c.snapshot()
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandSkipBackward, Interval: interval})
}

func (p *playerAdapter) Pause() error {
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandPause})
}

func (p *playerAdapter) PlayPause() error {
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandTogglePlayPause})
}

func (p *playerAdapter) Stop() error {
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandPause})
}

func (p *playerAdapter) Play() error {
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandPlay})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	_, _, info := p.c.snapshot()
	pos := max(info.Elapsed+time.Duration(offset)*time.Microsecond, 0)
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandChangePosition, Position: pos})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	pos := time.Duration(position) * time.Microsecond
	return p.c.dispatch(nowplaying.Request{Command: nowplaying.CommandChangePosition, Position: pos})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	_, _, info := p.c.snapshot()
	switch info.Status {
	case nowplaying.StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case nowplaying.StatusPaused:
		return types.PlaybackStatusPaused, nil
	case nowplaying.StatusStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	_, _, info := p.c.snapshot()
	if info.URL == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(info.URL)),
		Length:  types.Microseconds(info.Duration.Microseconds()),
		Title:   info.Title,
		Album:   info.Album,
		ArtUrl:  artworkURL(info),
	}
	if meta.Title == "" {
		meta.Title = titleFromURL(info.URL)
	}
	if info.Artist != "" {
		meta.Artist = []string{info.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	_, _, info := p.c.snapshot()
	return info.Elapsed.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// CanGoNext is always true in skip mode; in track mode it needs a next track.
func (p *playerAdapter) CanGoNext() (bool, error) {
	t, _, info := p.c.snapshot()
	return t.Has(nowplaying.CommandSkipForward) ||
		(t.Has(nowplaying.CommandNextTrack) && info.HasNext), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	t, _, info := p.c.snapshot()
	return t.Has(nowplaying.CommandSkipBackward) ||
		(t.Has(nowplaying.CommandPreviousTrack) && info.HasPrevious), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.c.has(nowplaying.CommandPlay), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.c.has(nowplaying.CommandPause), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.c.has(nowplaying.CommandChangePosition), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	t, _, _ := p.c.snapshot()
	return len(t) > 0, nil
}

// artworkURL prefers explicit artwork, then images next to local media.
func artworkURL(info nowplaying.Info) string {
	if info.ArtworkURL != "" {
		return info.ArtworkURL
	}
	path := localPath(info.URL)
	if path == "" {
		return ""
	}
	if art := FindArtwork(path); art != "" {
		return "file://" + art
	}
	return ""
}

// localPath returns the filesystem path for file URLs and absolute paths.
func localPath(raw string) string {
	if filepath.IsAbs(raw) {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return u.Path
}

func titleFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return filepath.Base(u.Path)
	}
	return raw
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

// Verify Center implements nowplaying.Center at compile time.
var _ nowplaying.Center = (*Center)(nil)
