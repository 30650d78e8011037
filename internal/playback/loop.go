package playback

import (
	"errors"

	"github.com/llehouerou/mediakit/internal/platform"
)

var errItemFailed = errors.New("item failed to play")

// eventLoop consumes engine events until the player is closed.
func (p *Player) eventLoop() {
	defer p.wg.Done()
	events := p.engine.Events()
	for {
		select {
		case <-p.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			p.handleEvent(ev)
		}
	}
}

func (p *Player) handleEvent(ev platform.Event) {
	switch e := ev.(type) {
	case platform.TimeChanged:
		p.handleTime(e)
	case platform.BufferChanged:
		p.handleBuffer(e)
	case platform.PauseChanged:
		p.update(func(s *State) { s.Paused = e.Paused })
		p.pushInfo()
	case platform.StatusChanged:
		p.handleStatus(e)
	case platform.ItemEnded:
		p.update(func(s *State) {
			s.Ended = true
			s.Paused = true
		})
		p.pushInfo()
		p.advance()
	}
}

// advance loads the next queued track when autoplay is on.
func (p *Player) advance() {
	p.mu.RLock()
	autoplay, closed := p.autoplay, p.closed
	p.mu.RUnlock()
	if !autoplay || closed || p.navigator == nil || !p.navigator.HasNext() {
		return
	}
	if err := p.NextTrack(); err != nil {
		p.logger.Debug().Err(err).Msg("advance to next track")
	}
}

func (p *Player) handleTime(e platform.TimeChanged) {
	p.mu.Lock()
	if p.state.URL == "" {
		p.mu.Unlock()
		return
	}
	p.state.Time = max(e.Time, 0)
	p.state.derive()
	captionChanged := p.updateCaptionLocked()
	beginObserving := !p.observing
	p.observing = true
	snap := p.state
	p.mu.Unlock()

	p.publish(snap)
	if captionChanged {
		p.publishCaption(snap.Caption)
	}
	if beginObserving {
		p.applySystemPlayer()
	}
	p.pushInfo()
}

func (p *Player) handleBuffer(e platform.BufferChanged) {
	p.update(func(s *State) {
		// Buffering stays set until the load sequence clears it.
		s.Buffering = e.Buffering || p.loading
		s.BufferTime = max(e.Buffered, 0)
		s.CacheSpeed = e.CacheSpeed
	})
}

func (p *Player) handleStatus(e platform.StatusChanged) {
	if e.Status != platform.StatusFailed {
		p.logger.Debug().Str("status", e.Status.String()).Msg("engine status")
		return
	}

	p.mu.Lock()
	if p.state.URL == "" {
		p.mu.Unlock()
		return
	}
	cause := e.Err
	if cause == nil {
		cause = errItemFailed
	}
	err := &Error{Kind: ErrorStatus, URL: p.state.URL, Err: cause}
	if p.loading {
		// The failure ends the load in flight: its result is discarded.
		p.finishLoadLocked()
		p.gen++
	}
	p.state.Err = err
	p.state.Buffering = false
	snap := p.state
	p.mu.Unlock()

	p.logger.Error().Err(cause).Str("url", err.URL).Msg("item failed")
	p.publish(snap)
	p.publishError(err)
	p.pushInfo()
}

// update applies fn to the state under the lock and publishes the result.
func (p *Player) update(fn func(*State)) {
	p.mu.Lock()
	fn(&p.state)
	p.state.derive()
	snap := p.state
	p.mu.Unlock()
	p.publish(snap)
}
