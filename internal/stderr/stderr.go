//go:build !windows

// Package stderr captures stderr output from C libraries (libmpv, ALSA,
// PulseAudio) that write directly to file descriptor 2, bypassing Go's
// os.Stderr. Captured lines go to the log instead of corrupting the TUI.
package stderr

import (
	"os"
	"syscall"

	"github.com/rs/zerolog"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start begins capturing stderr output and forwarding it to logger.
// Must be called early in main(), before any C library initialization.
// Returns an error if capture cannot be set up, but the program can continue
// without stderr capture (errors will just go to the original stderr).
func Start(logger zerolog.Logger) error {
	if started {
		return nil
	}

	// Create a pipe
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	// Save original stderr file descriptor
	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	err = syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go func() {
		defer close(done)
		Forward(pipeRead, logger)
	}()

	return nil
}

// Stop restores the original stderr. Should be called on program exit.
func Stop() {
	if !started {
		return
	}

	// Restore original stderr
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	// Close the write end so the forwarder drains and exits
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	started = false
}
