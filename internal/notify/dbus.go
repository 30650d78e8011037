//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName  = "org.freedesktop.Notifications"
	busPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIf = "org.freedesktop.Notifications"
)

// caller is the part of dbus.BusObject used here.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Desktop talks to the session notification server.
type Desktop struct {
	obj caller
}

// New connects to the session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}, fmt.Errorf("connect session bus: %w", err)
	}
	return &Desktop{obj: conn.Object(busName, busPath)}, nil
}

// Notify calls org.freedesktop.Notifications.Notify.
func (d *Desktop) Notify(n Notification) (uint32, error) {
	call := d.obj.Call(notifyIf+".Notify", 0,
		appName,
		n.ReplacesID,
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		hints(n),
		n.Timeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}
	return id, nil
}

// Close dismisses a notification.
func (d *Desktop) Close(id uint32) error {
	if id == 0 {
		return nil
	}
	if call := d.obj.Call(notifyIf+".CloseNotification", 0, id); call.Err != nil {
		return fmt.Errorf("close notification %d: %w", id, call.Err)
	}
	return nil
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	if n.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}
