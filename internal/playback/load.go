package playback

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// prerollRate is the rate the engine is primed at before playback starts.
const prerollRate = 1.0

// startLoad cancels any load in flight and begins loading url. A nil track
// keeps the current captions and metadata.
func (p *Player) startLoad(url string, t *Track) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if p.cancelLoad != nil {
		p.cancelLoad()
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelLoad = cancel
	p.loading = true

	if t != nil {
		p.captions = t.Captions
		p.metadata = t.Metadata
	}
	p.state = State{URL: url, Paused: true, Buffering: true}
	p.captionIdx = -2
	captionChanged := p.updateCaptionLocked()
	startTime, autoplay := p.startTime, p.autoplay
	if t != nil && t.StartTime > 0 {
		startTime = t.StartTime
	}

	// wg.Add under mu so Close cannot start waiting before it is counted.
	p.wg.Add(1)
	snap := p.state
	p.mu.Unlock()

	p.logger.Debug().Str("url", url).Uint64("gen", gen).Msg("loading")
	p.publish(snap)
	if captionChanged {
		p.publishCaption(snap.Caption)
	}
	p.pushInfo()

	go p.load(ctx, gen, url, startTime, autoplay)
}

// load runs replace, then duration and start seek concurrently, then preroll.
func (p *Player) load(ctx context.Context, gen uint64, url string, startTime time.Duration, autoplay bool) {
	defer p.wg.Done()

	if err := p.engine.Replace(ctx, url); err != nil {
		p.failLoad(ctx, gen, &Error{Kind: ErrorAsset, URL: url, Err: err})
		return
	}

	var duration time.Duration
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := p.engine.Duration(gctx)
		if err != nil {
			return &Error{Kind: ErrorAsset, URL: url, Err: err}
		}
		duration = d
		return nil
	})
	if startTime > 0 {
		g.Go(func() error {
			if err := p.engine.Seek(gctx, startTime); err != nil {
				return &Error{Kind: ErrorSeek, URL: url, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var perr *Error
		if !errors.As(err, &perr) {
			perr = &Error{Kind: ErrorAsset, URL: url, Err: err}
		}
		p.failLoad(ctx, gen, perr)
		return
	}

	if err := p.engine.Preroll(ctx, prerollRate); err != nil {
		p.failLoad(ctx, gen, &Error{Kind: ErrorPreroll, URL: url, Err: err})
		return
	}

	p.commitLoad(gen, duration, startTime, autoplay)
}

// failLoad records a load failure unless the load was superseded.
func (p *Player) failLoad(ctx context.Context, gen uint64, e *Error) {
	if ctx.Err() != nil {
		p.logger.Debug().Str("url", e.URL).Uint64("gen", gen).Msg("load cancelled")
		return
	}

	p.mu.Lock()
	if gen != p.gen || p.closed {
		p.mu.Unlock()
		p.logger.Debug().Str("url", e.URL).Uint64("gen", gen).Msg("discarding stale load failure")
		return
	}
	p.finishLoadLocked()
	p.state.Err = e
	p.state.Buffering = false
	snap := p.state
	p.mu.Unlock()

	p.logger.Error().Err(e.Err).Str("kind", e.Kind.String()).Str("url", e.URL).Msg("load failed")
	p.publish(snap)
	p.publishError(e)
	p.pushInfo()
}

// commitLoad publishes a finished load unless it was superseded.
func (p *Player) commitLoad(gen uint64, duration, startTime time.Duration, autoplay bool) {
	p.mu.Lock()
	if gen != p.gen || p.closed {
		p.mu.Unlock()
		p.logger.Debug().Uint64("gen", gen).Msg("discarding stale load")
		return
	}
	p.finishLoadLocked()

	p.state.Duration = duration
	if startTime > 0 {
		p.state.Time = startTime
	}
	p.state.Buffering = false

	playing := false
	if autoplay {
		if err := p.engine.Play(); err != nil {
			p.logger.Warn().Err(err).Msg("autoplay failed")
		} else {
			playing = true
		}
	}
	p.state.Paused = !playing
	p.state.derive()
	captionChanged := p.updateCaptionLocked()
	beginObserving := !p.observing
	p.observing = true
	snap := p.state
	p.mu.Unlock()

	p.logger.Info().
		Str("url", snap.URL).
		Dur("duration", duration).
		Bool("autoplay", playing).
		Msg("ready to play")

	p.publish(snap)
	if captionChanged {
		p.publishCaption(snap.Caption)
	}
	if beginObserving {
		p.applySystemPlayer()
	}
	p.pushInfo()
}

func (p *Player) finishLoadLocked() {
	p.loading = false
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
}
