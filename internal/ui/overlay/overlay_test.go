package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCenter(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")

	got := Center(base, "ab\ncd", 10, 0)
	want := strings.Join([]string{
		"....ab....",
		"....cd....",
		"..........",
	}, "\n")
	if got != want {
		t.Errorf("Center() =\n%s\nwant\n%s", got, want)
	}
}

func TestCenter_PadsBase(t *testing.T) {
	got := Center("", "x", 5, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[1] != "  x  " {
		t.Errorf("middle line = %q, want %q", lines[1], "  x  ")
	}
}

func TestCenter_StyledBase(t *testing.T) {
	base := "\x1b[31m" + strings.Repeat("r", 8) + "\x1b[0m"
	got := Center(base, "XX", 8, 0)
	if plain := ansi.Strip(got); plain != "rrrXXrrr" {
		t.Errorf("Center() plain = %q, want %q", plain, "rrrXXrrr")
	}
	if w := ansi.StringWidth(got); w != 8 {
		t.Errorf("width = %d, want 8", w)
	}
}

func TestCenter_BoxTallerThanBase(t *testing.T) {
	got := Center("....", "a\nb\nc", 4, 0)
	if got != ".a.." {
		t.Errorf("Center() = %q, want %q", got, ".a..")
	}
}
