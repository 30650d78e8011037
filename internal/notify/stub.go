//go:build !linux

package notify

// New returns a Nop notifier: only the freedesktop server is supported.
func New() (Notifier, error) {
	return Nop{}, nil
}
