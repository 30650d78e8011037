// Package notify announces playback on the desktop notification server.
package notify

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

const appName = "mediakit"

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or themed icon name
	Category   string
	Timeout    int32 // ms; -1 lets the server decide
	ReplacesID uint32
	Urgency    Urgency
	// Transient notifications are not kept in the server's history.
	Transient bool
}

// Notifier delivers notifications. Notify returns the server id of the
// notification, which can be passed back as ReplacesID.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }
func (Nop) Close(uint32) error                  { return nil }
