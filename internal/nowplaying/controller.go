package nowplaying

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Controller owns the now-playing configuration and pushes it to a Center.
type Controller struct {
	mu sync.Mutex

	center   Center
	actions  Actions
	controls Controls
	interval time.Duration
	enabled  bool
	table    Table
	logger   zerolog.Logger
}

// NewController creates a disabled controller. A nil center makes every call a no-op.
func NewController(center Center, actions Actions, controls Controls, interval time.Duration, logger zerolog.Logger) *Controller {
	if center == nil {
		center = nopCenter{}
	}
	return &Controller{
		center:   center,
		actions:  actions,
		controls: controls,
		interval: interval,
		logger:   logger.With().Str("component", "nowplaying").Logger(),
	}
}

// Enable registers the command handlers. Calling it again while enabled does nothing.
func (c *Controller) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		return
	}
	c.enabled = true
	c.pushLocked()
	c.logger.Debug().Str("controls", c.controls.String()).Msg("now-playing controls enabled")
}

// Disable removes every handler and clears the now-playing info.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.enabled = false
	c.table = nil
	c.center.SetHandlers(nil)
	c.center.SetInfo(nil)
	c.logger.Debug().Msg("now-playing controls disabled")
}

// Enabled reports whether handlers are registered.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetControls switches between skip and track controls, replacing the table when enabled.
func (c *Controller) SetControls(controls Controls) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controls == controls {
		return
	}
	c.controls = controls
	if c.enabled {
		c.pushLocked()
	}
}

// Controls returns the current control configuration.
func (c *Controller) Controls() Controls {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controls
}

// SetSkipInterval changes the skip interval. The surface only hears about it
// while enabled with skip controls.
func (c *Controller) SetSkipInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	if c.enabled && c.controls == ControlsSkip {
		c.center.SetPreferredSkipInterval(d)
	}
}

// SkipInterval returns the configured skip interval.
func (c *Controller) SkipInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// UpdateInfo mirrors info to the surface while enabled.
func (c *Controller) UpdateInfo(info Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.center.SetInfo(&info)
}

// Table returns the registered command table, nil when disabled.
func (c *Controller) Table() Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

func (c *Controller) pushLocked() {
	c.table = Bindings(c.controls, c.actions)
	c.center.SetHandlers(c.table)
	if c.controls == ControlsSkip {
		c.center.SetPreferredSkipInterval(c.interval)
	}
}

type nopCenter struct{}

func (nopCenter) SetHandlers(Table) {}
func (nopCenter) SetPreferredSkipInterval(time.Duration) {}
func (nopCenter) SetInfo(*Info) {}
