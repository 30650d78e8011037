//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBus struct {
	method string
	args   []any
	err    error
	reply  uint32
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.method = method
	f.args = args
	if f.err != nil {
		return &dbus.Call{Err: f.err}
	}
	return &dbus.Call{Body: []any{f.reply}}
}

func TestDesktop_Notify(t *testing.T) {
	bus := &fakeBus{reply: 7}
	d := &Desktop{obj: bus}

	id, err := d.Notify(Notification{Title: "Song", Body: "Artist", ReplacesID: 3, Timeout: 5000})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
	if bus.method != notifyIf+".Notify" {
		t.Errorf("method = %q", bus.method)
	}
	if len(bus.args) != 8 {
		t.Fatalf("args = %d, want 8", len(bus.args))
	}
	if bus.args[0] != appName || bus.args[1] != uint32(3) || bus.args[3] != "Song" {
		t.Errorf("args = %v", bus.args)
	}
}

func TestDesktop_NotifyError(t *testing.T) {
	d := &Desktop{obj: &fakeBus{err: errors.New("no server")}}
	if _, err := d.Notify(Notification{Title: "x"}); err == nil {
		t.Error("Notify() error = nil, want error")
	}
}

func TestDesktop_CloseZeroIsNoop(t *testing.T) {
	bus := &fakeBus{}
	d := &Desktop{obj: bus}
	if err := d.Close(0); err != nil {
		t.Fatalf("Close(0) error = %v", err)
	}
	if bus.method != "" {
		t.Errorf("Close(0) called %q", bus.method)
	}
}

func TestHints(t *testing.T) {
	h := hints(Notification{Urgency: UrgencyCritical, Category: "x-mediakit.error", Transient: true})
	if got := h["urgency"].Value(); got != byte(2) {
		t.Errorf("urgency = %v, want 2", got)
	}
	if got := h["category"].Value(); got != "x-mediakit.error" {
		t.Errorf("category = %v", got)
	}
	if _, ok := h["transient"]; !ok {
		t.Error("transient hint missing")
	}

	plain := hints(Notification{})
	if _, ok := plain["category"]; ok {
		t.Error("empty category should be omitted")
	}
	if _, ok := plain["transient"]; ok {
		t.Error("transient should be omitted")
	}
}
