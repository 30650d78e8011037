package mpvplayer

import (
	"errors"
	"strings"

	"github.com/supersonic-app/go-mpv"

	"github.com/llehouerou/mediakit/internal/platform"
)

var errNilValue = errors.New("nil value")

// unknownDuration reports whether a duration read failed because the item
// has none: mpv leaves the property unavailable for live streams.
func unknownDuration(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errNilValue) {
		return true
	}
	return strings.Contains(err.Error(), "property unavailable")
}

func (e *Engine) getPropertyDouble(name string) (float64, error) {
	value, err := e.instance.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	} else if value == nil {
		return 0, errNilValue
	}
	return value.(float64), nil
}

func (e *Engine) getPropertyInt64(name string) (int64, error) {
	value, err := e.instance.GetProperty(name, mpv.FORMAT_INT64)
	if err != nil {
		return 0, err
	} else if value == nil {
		return 0, errNilValue
	}
	return value.(int64), nil
}

func (e *Engine) getPropertyBool(name string) (bool, error) {
	value, err := e.instance.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	} else if value == nil {
		return false, errNilValue
	}
	return value.(bool), nil
}

// ConfigureAudioSession maps the session onto mpv audio options.
//
// Category names the output stream for the sound server, spoken audio keeps
// pitch when the rate changes, and a solo category without mixing asks for
// exclusive output. Ducking has no mpv equivalent and is only logged.
func (e *Engine) ConfigureAudioSession(s platform.AudioSession) error {
	if err := s.Validate(); err != nil {
		return err
	}

	exclusive := "no"
	if s.Category == platform.CategorySoloAmbient && !s.Has(platform.OptionMixWithOthers) {
		exclusive = "yes"
	}
	pitch := "yes"
	if s.Mode == platform.ModeMoviePlayback {
		pitch = "no"
	}

	settings := [][2]string{
		{"audio-client-name", "mediakit-" + strings.ReplaceAll(string(s.Category), "_", "-")},
		{"audio-exclusive", exclusive},
		{"audio-pitch-correction", pitch},
	}
	for _, kv := range settings {
		if err := e.instance.SetOptionString(kv[0], kv[1]); err != nil {
			return err
		}
	}

	if s.Has(platform.OptionDuckOthers) {
		e.logger.Debug().Msg("duck_others is not supported by mpv, ignoring")
	}
	e.logger.Debug().
		Str("category", string(s.Category)).
		Str("mode", string(s.Mode)).
		Str("exclusive", exclusive).
		Msg("audio session configured")
	return nil
}
