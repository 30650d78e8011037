package mpvplayer

import (
	"fmt"

	"github.com/supersonic-app/go-mpv"

	"github.com/llehouerou/mediakit/internal/platform"
)

func (e *Engine) eventLoop() {
	defer e.wg.Done()

	for {
		select {
		case <-e.done:
			return
		default:
		}

		evt := e.instance.WaitEvent(0.25)
		if evt == nil {
			continue
		}

		switch evt.Event_Id {
		case mpv.EVENT_SHUTDOWN:
			return

		case mpv.EVENT_PROPERTY_CHANGE:
			e.refreshStatus()

		case mpv.EVENT_FILE_LOADED:
			e.mu.Lock()
			if e.current != nil {
				e.resolveLocked(e.current, nil)
			}
			e.mu.Unlock()
			e.emit(platform.StatusChanged{Status: platform.StatusReadyToPlay})

		case mpv.EVENT_END_FILE:
			if evt.Error == nil {
				continue
			}
			err := fmt.Errorf("playback failed: %w", evt.Error)
			e.logger.Warn().Err(evt.Error).Msg("end file with error")
			e.mu.Lock()
			if e.current != nil {
				e.resolveLocked(e.current, err)
			}
			e.mu.Unlock()
			e.emit(platform.StatusChanged{Status: platform.StatusFailed, Err: err})

		case mpv.EVENT_PLAYBACK_RESTART:
			signal(e.restarted)

		case mpv.EVENT_IDLE, mpv.EVENT_NONE, mpv.EVENT_START_FILE:
			continue

		default:
			e.logger.Debug().Str("event", evt.Event_Id.String()).Msg("unhandled mpv event")
		}
	}
}

// refreshStatus reads the observed properties and emits whatever changed.
// Properties are re-read rather than decoded from the event payload.
func (e *Engine) refreshStatus() {
	var next status

	if pos, err := e.getPropertyDouble("time-pos"); err == nil {
		next.time = seconds(pos)
	}
	if paused, err := e.getPropertyBool("pause"); err == nil {
		next.paused = paused
	}
	if waiting, err := e.getPropertyBool("paused-for-cache"); err == nil {
		next.buffering = waiting
	}
	if ahead, err := e.getPropertyDouble("demuxer-cache-time"); err == nil {
		next.buffered = seconds(ahead)
	}
	if speed, err := e.getPropertyInt64("cache-speed"); err == nil {
		next.cacheSpeed = speed
	}
	if eof, err := e.getPropertyBool("eof-reached"); err == nil {
		next.ended = eof
	}

	e.mu.Lock()
	prev := e.last
	e.last = next
	e.mu.Unlock()

	if next.time != prev.time {
		e.emit(platform.TimeChanged{Time: next.time})
	}
	if next.paused != prev.paused {
		e.emit(platform.PauseChanged{Paused: next.paused})
	}
	if next.buffering != prev.buffering || next.buffered != prev.buffered || next.cacheSpeed != prev.cacheSpeed {
		if prev.buffering && !next.buffering {
			signal(e.cacheOK)
		}
		e.emit(platform.BufferChanged{
			Buffering:  next.buffering,
			Buffered:   next.buffered,
			CacheSpeed: next.cacheSpeed,
		})
	}
	if next.ended && !prev.ended {
		e.emit(platform.ItemEnded{})
	}
}
