// internal/playback/player.go
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/caption"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/platform"
)

// DefaultSeekInterval is used when Options.SeekInterval is zero.
const DefaultSeekInterval = 15 * time.Second

// Options configures a Player.
type Options struct {
	Autoplay           bool
	URL                string
	StartTime          time.Duration
	SeekInterval       time.Duration
	ShowInSystemPlayer bool
	AudioSession       *platform.AudioSession // nil keeps platform.DefaultAudioSession
	Controls           nowplaying.Controls
	Captions           *caption.Track
	Metadata           nowplaying.Metadata
	Navigator          Navigator
	Logger             zerolog.Logger
}

// Player adapts a platform engine into observable state and wires the
// now-playing surface to its controls.
type Player struct {
	engine    platform.Engine
	np        *nowplaying.Controller
	navigator Navigator
	logger    zerolog.Logger

	mu           sync.RWMutex
	state        State
	captions     *caption.Track
	captionIdx   int
	metadata     nowplaying.Metadata
	autoplay     bool
	startTime    time.Duration
	showInSystem bool
	observing    bool
	loading      bool
	audio        platform.AudioSession
	gen          uint64
	cancelLoad   context.CancelFunc
	closed       bool

	// sysMu serializes applySystemPlayer so the last caller's view of the
	// flags wins.
	sysMu sync.Mutex

	// infoMu keeps info pushes in state order.
	infoMu sync.Mutex

	subsMu sync.RWMutex
	subs   []*Subscription
	// subsClosed is set by Close; later subscriptions start closed.
	subsClosed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a player over engine. center may be nil when there is no
// now-playing surface. When opts.URL is set loading starts immediately.
func New(engine platform.Engine, center nowplaying.Center, opts Options) *Player {
	interval := opts.SeekInterval
	if interval <= 0 {
		interval = DefaultSeekInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		engine:       engine,
		navigator:    opts.Navigator,
		logger:       opts.Logger.With().Str("component", "playback").Logger(),
		captions:     opts.Captions,
		captionIdx:   -1,
		metadata:     opts.Metadata,
		autoplay:     opts.Autoplay,
		startTime:    opts.StartTime,
		showInSystem: opts.ShowInSystemPlayer,
		audio:        platform.DefaultAudioSession,
		ctx:          ctx,
		cancel:       cancel,
	}
	p.np = nowplaying.NewController(center, p.actions(), opts.Controls, interval, opts.Logger)

	if opts.AudioSession != nil {
		if err := p.SetAudioSession(*opts.AudioSession); err != nil {
			p.logger.Warn().Err(err).Msg("audio session rejected, keeping default")
		}
	}

	p.wg.Add(1)
	go p.eventLoop()

	if opts.URL != "" {
		p.startLoad(opts.URL, nil)
	}
	return p
}

func (p *Player) actions() nowplaying.Actions {
	return nowplaying.Actions{
		Play:          p.Play,
		Pause:         p.Pause,
		Toggle:        p.Toggle,
		SkipForward:   p.SkipForward,
		SkipBackward:  p.SkipBackward,
		NextTrack:     p.NextTrack,
		PreviousTrack: p.PreviousTrack,
		SeekTo:        p.SeekTo,
	}
}

// Snapshot returns the current state.
func (p *Player) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Subscribe returns a new subscription. The current state is delivered first.
func (p *Player) Subscribe() *Subscription {
	sub := newSubscription()
	sub.sendState(p.Snapshot())
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	if p.subsClosed {
		sub.close()
		return sub
	}
	p.subs = append(p.subs, sub)
	return sub
}

// Close stops playback observation, removes now-playing controls and closes
// every subscription. The engine is owned by the caller.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	p.mu.Unlock()

	p.applySystemPlayer()
	p.cancel()
	p.wg.Wait()

	p.subsMu.Lock()
	for _, sub := range p.subs {
		sub.close()
	}
	p.subs = nil
	p.subsClosed = true
	p.subsMu.Unlock()
	return nil
}

// SetURL loads a new item, keeping the current captions and metadata.
// The error state is reset and the load sequence runs again.
func (p *Player) SetURL(url string) {
	p.startLoad(url, nil)
}

// Load replaces the current item along with its captions and metadata.
func (p *Player) Load(t Track) {
	p.startLoad(t.URL, &t)
}

// SetAutoplay controls whether playback starts once an item is ready.
// It applies to the next load.
func (p *Player) SetAutoplay(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoplay = v
}

// Autoplay returns the autoplay flag.
func (p *Player) Autoplay() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.autoplay
}

// SetStartTime sets the position the next load seeks to.
func (p *Player) SetStartTime(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startTime = max(d, 0)
}

// StartTime returns the configured start position.
func (p *Player) StartTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.startTime
}

// SetSeekInterval changes the skip interval used by skip commands.
func (p *Player) SetSeekInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultSeekInterval
	}
	p.np.SetSkipInterval(d)
}

// SeekInterval returns the skip interval.
func (p *Player) SeekInterval() time.Duration {
	return p.np.SkipInterval()
}

// SetControls switches remote controls between skip and track mode.
func (p *Player) SetControls(c nowplaying.Controls) {
	p.np.SetControls(c)
}

// Controls returns the remote control mode.
func (p *Player) Controls() nowplaying.Controls {
	return p.np.Controls()
}

// RemoteCommands returns the commands currently registered with the
// now-playing surface.
func (p *Player) RemoteCommands() []nowplaying.Command {
	return p.np.Table().Commands()
}

// SetShowInSystemPlayer registers or removes the now-playing controls.
// Registration waits until time observation has begun.
func (p *Player) SetShowInSystemPlayer(v bool) {
	p.mu.Lock()
	p.showInSystem = v
	p.mu.Unlock()
	p.applySystemPlayer()
}

// ShowInSystemPlayer returns the system player flag.
func (p *Player) ShowInSystemPlayer() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.showInSystem
}

// SetAudioSession applies s to the engine. Invalid sessions are rejected
// and the previous one is kept.
func (p *Player) SetAudioSession(s platform.AudioSession) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := p.engine.ConfigureAudioSession(s); err != nil {
		return err
	}
	p.mu.Lock()
	p.audio = s
	p.mu.Unlock()
	return nil
}

// AudioSession returns the active audio session configuration.
func (p *Player) AudioSession() platform.AudioSession {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.audio
}

// SetCaptions replaces the caption track. Nil removes captions.
func (p *Player) SetCaptions(t *caption.Track) {
	p.mu.Lock()
	p.captions = t
	p.captionIdx = -2
	changed := p.updateCaptionLocked()
	snap := p.state
	p.mu.Unlock()

	p.publish(snap)
	if changed {
		p.publishCaption(snap.Caption)
	}
}

// Captions returns the caption track.
func (p *Player) Captions() *caption.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.captions
}

// SetMetadata updates the item description shown by the now-playing surface.
func (p *Player) SetMetadata(m nowplaying.Metadata) {
	p.mu.Lock()
	p.metadata = m
	p.mu.Unlock()
	p.pushInfo()
}

// Metadata returns the item description.
func (p *Player) Metadata() nowplaying.Metadata {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.metadata
}

// applySystemPlayer syncs the controller with the system player flag.
// Must be called without p.mu held.
func (p *Player) applySystemPlayer() {
	p.sysMu.Lock()
	defer p.sysMu.Unlock()

	p.mu.RLock()
	show, observing, closed := p.showInSystem, p.observing, p.closed
	p.mu.RUnlock()

	switch {
	case closed || !show:
		p.np.Disable()
	case observing:
		p.np.Enable()
		p.pushInfo()
	}
}

// pushInfo mirrors the current state to the now-playing surface. The
// snapshot and the push happen under infoMu so pushes never reorder.
func (p *Player) pushInfo() {
	p.infoMu.Lock()
	defer p.infoMu.Unlock()

	p.mu.RLock()
	s := p.state
	info := nowplaying.Info{
		Metadata: p.metadata,
		URL:      s.URL,
		Duration: s.Duration,
		Elapsed:  s.Time,
		Status:   s.Status(),
	}
	p.mu.RUnlock()
	if info.Status == nowplaying.StatusPlaying {
		info.Rate = 1
	}
	if p.navigator != nil {
		info.HasNext = p.navigator.HasNext()
		info.HasPrevious = p.navigator.HasPrevious()
	}
	p.np.UpdateInfo(info)
}

// QueuePosition returns the navigator's current index and track count.
// Without a navigator it returns -1 and 0.
func (p *Player) QueuePosition() (index, total int) {
	if p.navigator == nil {
		return -1, 0
	}
	return p.navigator.Position()
}

// updateCaptionLocked recomputes the active caption. Returns true if it changed.
func (p *Player) updateCaptionLocked() bool {
	idx := p.captions.At(p.state.Time)
	if idx == p.captionIdx {
		return false
	}
	prev := p.state.Caption
	p.captionIdx = idx
	if idx < 0 {
		p.state.Caption = nil
	} else {
		c := p.captions.Caption(idx)
		p.state.Caption = &c
	}
	return !sameCaption(prev, p.state.Caption)
}

func sameCaption(a, b *caption.Caption) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (p *Player) publish(s State) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		sub.sendState(s)
	}
}

func (p *Player) publishCaption(c *caption.Caption) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		sub.sendCaption(CaptionChange{Caption: c})
	}
}

func (p *Player) publishError(e *Error) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	for _, sub := range p.subs {
		sub.sendError(e)
	}
}
