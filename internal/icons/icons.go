package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play         string
	Pause        string
	Stop         string
	Buffering    string
	Captions     string
	SystemPlayer string
	Autoplay     string
	Error        string
}

var (
	nerdIcons = Icons{
		Play:         "\uf04b", // nf-fa-play
		Pause:        "\uf04c", // nf-fa-pause
		Stop:         "\uf04d", // nf-fa-stop
		Buffering:    "\uf254", // nf-fa-hourglass
		Captions:     "\uf20a", // nf-fa-cc
		SystemPlayer: "\uf001", // nf-fa-music
		Autoplay:     "\uf04e", // nf-fa-forward
		Error:        "\uf071", // nf-fa-warning
	}

	unicodeIcons = Icons{
		Play:         "▶",
		Pause:        "⏸",
		Stop:         "⏹",
		Buffering:    "⏳",
		Captions:     "💬",
		SystemPlayer: "♫",
		Autoplay:     "⏵",
		Error:        "⚠",
	}

	noneIcons = Icons{
		Play:         ">",
		Pause:        "||",
		Stop:         "[]",
		Buffering:    "~",
		Captions:     "CC",
		SystemPlayer: "",
		Autoplay:     "",
		Error:        "!",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value. Unknown styles use unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Status returns the icon for the playback status.
func Status(playing, loaded bool) string {
	switch {
	case !loaded:
		return current.Stop
	case playing:
		return current.Play
	default:
		return current.Pause
	}
}

// Play returns the playing icon.
func Play() string { return current.Play }

// Pause returns the paused icon.
func Pause() string { return current.Pause }

// Buffering returns the buffering indicator.
func Buffering() string { return current.Buffering }

// Error returns the error indicator.
func Error() string { return current.Error }

// Label prefixes text with icon, or returns text alone when the style has no icon for it.
func Label(icon, text string) string {
	if icon == "" {
		return text
	}
	return icon + " " + text
}

// Captions returns the caption indicator.
func Captions() string { return current.Captions }

// SystemPlayer returns the system player indicator.
func SystemPlayer() string { return current.SystemPlayer }

// Autoplay returns the autoplay indicator.
func Autoplay() string { return current.Autoplay }
