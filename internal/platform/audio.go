package platform

import (
	"fmt"
	"strings"
)

// AudioCategory says what kind of audio the app produces.
type AudioCategory string

const (
	CategoryPlayback    AudioCategory = "playback"
	CategoryAmbient     AudioCategory = "ambient"
	CategorySoloAmbient AudioCategory = "solo_ambient"
)

// AudioMode refines the category for a specific use.
type AudioMode string

const (
	ModeDefault       AudioMode = "default"
	ModeMoviePlayback AudioMode = "movie_playback"
	ModeSpokenAudio   AudioMode = "spoken_audio"
)

// AudioOption is a behaviour flag for the audio session.
type AudioOption string

const (
	OptionMixWithOthers AudioOption = "mix_with_others"
	OptionDuckOthers    AudioOption = "duck_others"
)

// AudioSession groups audio output settings pushed to the engine.
type AudioSession struct {
	Category AudioCategory
	Mode     AudioMode
	Options  []AudioOption
}

// DefaultAudioSession is used when no session is configured.
var DefaultAudioSession = AudioSession{
	Category: CategoryPlayback,
	Mode:     ModeDefault,
}

// Has reports whether the session carries opt.
func (s AudioSession) Has(opt AudioOption) bool {
	for _, o := range s.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// Validate checks that every field holds a known value.
func (s AudioSession) Validate() error {
	switch s.Category {
	case CategoryPlayback, CategoryAmbient, CategorySoloAmbient:
	default:
		return fmt.Errorf("unknown audio category %q", s.Category)
	}
	switch s.Mode {
	case ModeDefault, ModeMoviePlayback, ModeSpokenAudio:
	default:
		return fmt.Errorf("unknown audio mode %q", s.Mode)
	}
	for _, o := range s.Options {
		switch o {
		case OptionMixWithOthers, OptionDuckOthers:
		default:
			return fmt.Errorf("unknown audio option %q", o)
		}
	}
	return nil
}

// ParseAudioSession builds a session from config strings. Empty values take defaults.
func ParseAudioSession(category, mode string, options []string) (AudioSession, error) {
	s := DefaultAudioSession
	if category != "" {
		s.Category = AudioCategory(strings.ToLower(category))
	}
	if mode != "" {
		s.Mode = AudioMode(strings.ToLower(mode))
	}
	for _, o := range options {
		s.Options = append(s.Options, AudioOption(strings.ToLower(o)))
	}
	return s, s.Validate()
}
