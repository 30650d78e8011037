//go:build windows

// Package stderr is a no-op on Windows: libmpv there logs through its
// message API only, so fd 2 stays quiet while the TUI runs.
package stderr

import "github.com/rs/zerolog"

// Start records that capture is unavailable.
func Start(logger zerolog.Logger) error {
	logger.Debug().Str("component", "stderr").Msg("stderr capture not supported on windows")
	return nil
}

// Stop does nothing.
func Stop() {}
