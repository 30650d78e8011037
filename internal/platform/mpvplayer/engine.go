// Package mpvplayer implements platform.Engine on libmpv.
package mpvplayer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/supersonic-app/go-mpv"

	"github.com/llehouerou/mediakit/internal/platform"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("mpv engine closed")

// observed lists the properties the event loop follows, with their formats.
var observed = []struct {
	name   string
	format mpv.Format
}{
	{"time-pos", mpv.FORMAT_DOUBLE},
	{"pause", mpv.FORMAT_FLAG},
	{"paused-for-cache", mpv.FORMAT_FLAG},
	{"demuxer-cache-time", mpv.FORMAT_DOUBLE},
	{"cache-speed", mpv.FORMAT_INT64},
	{"eof-reached", mpv.FORMAT_FLAG},
}

// Options configures the engine at creation.
type Options struct {
	// Video enables video output. Audio-only when false.
	Video  bool
	Logger zerolog.Logger
}

// load tracks one Replace call until mpv reports the file loaded or failed.
type load struct {
	done chan struct{}
	err  error
}

// Engine drives a libmpv instance.
type Engine struct {
	instance *mpv.Mpv
	logger   zerolog.Logger
	events   chan platform.Event

	mu        sync.Mutex
	current   *load
	restarted chan struct{} // signalled on playback restart after a seek
	cacheOK   chan struct{} // signalled when playback stops waiting for cache
	last      status
	closed    bool

	done chan struct{}
	wg   sync.WaitGroup
}

// status is the last state reported, used to emit only changes.
type status struct {
	time       time.Duration
	paused     bool
	buffering  bool
	buffered   time.Duration
	cacheSpeed int64
	ended      bool
}

// New creates and initializes a libmpv instance and starts its event loop.
func New(opts Options) (*Engine, error) {
	instance := mpv.Create()

	video := "no"
	if opts.Video {
		video = "auto"
	}
	settings := [][2]string{
		{"video", video},
		{"audio-display", "no"},
		{"idle", "yes"},
		{"keep-open", "yes"},
		{"pause", "yes"},
		{"cache", "yes"},
		{"terminal", "no"},
	}
	for _, kv := range settings {
		if err := instance.SetOptionString(kv[0], kv[1]); err != nil {
			instance.TerminateDestroy()
			return nil, fmt.Errorf("set mpv option %s: %w", kv[0], err)
		}
	}
	if err := instance.Initialize(); err != nil {
		instance.TerminateDestroy()
		return nil, fmt.Errorf("initialize mpv: %w", err)
	}

	for _, p := range observed {
		if err := instance.ObserveProperty(0, p.name, p.format); err != nil {
			instance.TerminateDestroy()
			return nil, fmt.Errorf("observe %s: %w", p.name, err)
		}
	}

	e := &Engine{
		instance:  instance,
		logger:    opts.Logger.With().Str("component", "mpv").Logger(),
		events:    make(chan platform.Event, 32),
		restarted: make(chan struct{}, 1),
		cacheOK:   make(chan struct{}, 1),
		last:      status{paused: true},
		done:      make(chan struct{}),
	}

	e.wg.Add(1)
	go e.eventLoop()
	return e, nil
}

func (e *Engine) Replace(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.current != nil {
		e.resolveLocked(e.current, context.Canceled)
	}
	e.current = &load{done: make(chan struct{})}
	e.last.ended = false
	e.mu.Unlock()

	if err := e.instance.Command([]string{"loadfile", url, "replace"}); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}
	return nil
}

func (e *Engine) Duration(ctx context.Context) (time.Duration, error) {
	if err := e.waitLoaded(ctx); err != nil {
		return 0, err
	}
	secs, err := e.getPropertyDouble("duration")
	if unknownDuration(err) {
		e.logger.Debug().Err(err).Msg("item has no duration")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read duration: %w", err)
	}
	return seconds(secs), nil
}

func (e *Engine) Seek(ctx context.Context, to time.Duration) error {
	if err := e.waitLoaded(ctx); err != nil {
		return err
	}
	drain(e.restarted)

	pos := fmt.Sprintf("%.3f", to.Seconds())
	if err := e.instance.Command([]string{"seek", pos, "absolute"}); err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	select {
	case <-e.restarted:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrClosed
	}
}

func (e *Engine) Preroll(ctx context.Context, rate float64) error {
	if err := e.waitLoaded(ctx); err != nil {
		return err
	}
	if err := e.instance.SetProperty("speed", mpv.FORMAT_DOUBLE, rate); err != nil {
		return fmt.Errorf("set speed: %w", err)
	}

	drain(e.cacheOK)
	waiting, err := e.getPropertyBool("paused-for-cache")
	if err != nil {
		return fmt.Errorf("read cache state: %w", err)
	}
	if !waiting {
		return nil
	}

	select {
	case <-e.cacheOK:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrClosed
	}
}

func (e *Engine) Play() error {
	return e.instance.SetProperty("pause", mpv.FORMAT_FLAG, false)
}

func (e *Engine) Pause() error {
	return e.instance.SetProperty("pause", mpv.FORMAT_FLAG, true)
}

func (e *Engine) Time() time.Duration {
	secs, err := e.getPropertyDouble("time-pos")
	if err != nil {
		return 0
	}
	return seconds(secs)
}

func (e *Engine) Events() <-chan platform.Event { return e.events }

// Close stops the event loop and destroys the mpv instance.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	if e.current != nil {
		e.resolveLocked(e.current, ErrClosed)
	}
	e.mu.Unlock()

	close(e.done)
	e.wg.Wait()
	e.instance.TerminateDestroy()
	close(e.events)
	return nil
}

// waitLoaded blocks until the current Replace has loaded or failed.
func (e *Engine) waitLoaded(ctx context.Context) error {
	e.mu.Lock()
	l := e.current
	e.mu.Unlock()
	if l == nil {
		return errors.New("no item loaded")
	}

	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolveLocked completes a pending load once. Caller holds e.mu.
func (e *Engine) resolveLocked(l *load, err error) {
	select {
	case <-l.done:
		return
	default:
	}
	l.err = err
	close(l.done)
}

func (e *Engine) emit(ev platform.Event) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

// signal does a non-blocking send on a 1-buffered notification channel.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func drain(ch chan struct{}) {
	select {
	case <-ch:
	default:
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Verify Engine implements platform.Engine at compile time.
var _ platform.Engine = (*Engine)(nil)
