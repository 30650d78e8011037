package playback

import (
	"context"
	"time"
)

// seekTimeout bounds how long a user seek waits for the engine.
const seekTimeout = 10 * time.Second

// Play resumes playback.
func (p *Player) Play() error {
	if err := p.checkLoaded(); err != nil {
		return err
	}
	if err := p.engine.Play(); err != nil {
		return err
	}
	p.update(func(s *State) {
		s.Paused = false
		s.Ended = false
	})
	p.pushInfo()
	return nil
}

// Pause pauses playback.
func (p *Player) Pause() error {
	if err := p.checkLoaded(); err != nil {
		return err
	}
	if err := p.engine.Pause(); err != nil {
		return err
	}
	p.update(func(s *State) { s.Paused = true })
	p.pushInfo()
	return nil
}

// Toggle switches between playing and paused.
func (p *Player) Toggle() error {
	if p.Snapshot().Paused {
		return p.Play()
	}
	return p.Pause()
}

// SeekTo moves playback to pos, clamped to the item duration when known.
func (p *Player) SeekTo(pos time.Duration) error {
	if err := p.checkLoaded(); err != nil {
		return err
	}

	s := p.Snapshot()
	pos = max(pos, 0)
	if s.Duration > 0 {
		pos = min(pos, s.Duration)
	}

	ctx, cancel := context.WithTimeout(p.ctx, seekTimeout)
	defer cancel()
	if err := p.engine.Seek(ctx, pos); err != nil {
		return &Error{Kind: ErrorSeek, URL: s.URL, Err: err}
	}

	p.mu.Lock()
	p.state.Time = pos
	p.state.Ended = false
	p.state.derive()
	captionChanged := p.updateCaptionLocked()
	snap := p.state
	p.mu.Unlock()

	p.publish(snap)
	if captionChanged {
		p.publishCaption(snap.Caption)
	}
	p.pushInfo()
	return nil
}

// SkipForward seeks forward by d, or by the skip interval if d is zero.
func (p *Player) SkipForward(d time.Duration) error {
	if d <= 0 {
		d = p.SeekInterval()
	}
	return p.SeekTo(p.Snapshot().Time + d)
}

// SkipBackward seeks backward by d, or by the skip interval if d is zero.
func (p *Player) SkipBackward(d time.Duration) error {
	if d <= 0 {
		d = p.SeekInterval()
	}
	return p.SeekTo(p.Snapshot().Time - d)
}

// NextTrack loads the navigator's next track.
func (p *Player) NextTrack() error {
	return p.navigate(func(n Navigator) (Track, bool) { return n.Next() })
}

// PreviousTrack loads the navigator's previous track.
func (p *Player) PreviousTrack() error {
	return p.navigate(func(n Navigator) (Track, bool) { return n.Previous() })
}

func (p *Player) navigate(step func(Navigator) (Track, bool)) error {
	if p.isClosed() {
		return ErrClosed
	}
	if p.navigator == nil {
		return ErrNoTrack
	}
	t, ok := step(p.navigator)
	if !ok {
		return ErrNoTrack
	}
	p.Load(t)
	return nil
}

func (p *Player) checkLoaded() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if p.state.URL == "" {
		return ErrNoTrack
	}
	return nil
}

func (p *Player) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
