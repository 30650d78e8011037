package mpvplayer

import (
	"errors"
	"fmt"
	"testing"
)

func TestUnknownDuration(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no error", nil, false},
		{"nil value", errNilValue, true},
		{"wrapped nil value", fmt.Errorf("get: %w", errNilValue), true},
		{"property unavailable", errors.New("property unavailable"), true},
		{"other failure", errors.New("invalid parameter"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unknownDuration(tt.err); got != tt.want {
				t.Errorf("unknownDuration(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
