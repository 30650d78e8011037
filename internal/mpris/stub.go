//go:build !linux

package mpris

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/nowplaying"
)

// Center is a no-op on non-Linux platforms.
type Center struct{}

// New returns a no-op center on non-Linux platforms.
func New(_ string, _ zerolog.Logger) (*Center, error) {
	return &Center{}, nil
}

// Close is a no-op on non-Linux platforms.
func (c *Center) Close() error {
	return nil
}

func (c *Center) SetHandlers(nowplaying.Table) {}

func (c *Center) SetPreferredSkipInterval(time.Duration) {}

func (c *Center) SetInfo(*nowplaying.Info) {}
