package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/platform"
)

const appName = "mediakit"

// DefaultSeekInterval is the skip interval used when none is configured.
const DefaultSeekInterval = 15 * time.Second

type Config struct {
	Playback     PlaybackConfig     `koanf:"playback"`
	NowPlaying   NowPlayingConfig   `koanf:"now_playing"`
	AudioSession AudioSessionConfig `koanf:"audio_session"`
	Captions     CaptionsConfig     `koanf:"captions"`
	Log          LogConfig          `koanf:"log"`
	UI           UIConfig           `koanf:"ui"`
	Notify       NotifyConfig       `koanf:"notifications"`
}

// PlaybackConfig holds the defaults applied to each load.
type PlaybackConfig struct {
	Autoplay     bool          `koanf:"autoplay"`
	StartTime    time.Duration `koanf:"start_time"`    // e.g. "1m30s"
	SeekInterval time.Duration `koanf:"seek_interval"` // default: 15s
	Resume       bool          `koanf:"resume"`        // start items where they were last stopped
}

// NowPlayingConfig controls the system media surface (MPRIS).
type NowPlayingConfig struct {
	Enabled  *bool  `koanf:"enabled"`  // default: true
	Controls string `koanf:"controls"` // "skip" or "track" (default: "skip")
}

// AudioSessionConfig describes the audio output behaviour.
type AudioSessionConfig struct {
	Category string   `koanf:"category"` // "playback", "ambient", "solo_ambient"
	Mode     string   `koanf:"mode"`     // "default", "movie_playback", "spoken_audio"
	Options  []string `koanf:"options"`  // "mix_with_others", "duck_others"
}

// CaptionsConfig holds caption sources.
type CaptionsConfig struct {
	Path   string `koanf:"path"`   // caption file or directory searched for <media>.srt/.vtt/.lrc
	Lyrics bool   `koanf:"lyrics"` // look up synced lyrics on lrclib when no file matches
}

// UIConfig holds terminal view settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none" (default: "unicode")
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"` // announce track changes and playback errors
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/mediakit/mediakit.log
}

// Load reads the config files in priority order (last wins).
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFile reads a single TOML file that must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return LoadFiles(path)
}

// LoadFiles reads the given TOML files, skipping those that do not exist.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Captions.Path != "" {
		cfg.Captions.Path = expandPath(cfg.Captions.Path)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/mediakit/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// SeekInterval returns the skip interval with the default applied.
func (c *Config) SeekInterval() time.Duration {
	if c.Playback.SeekInterval <= 0 {
		return DefaultSeekInterval
	}
	return c.Playback.SeekInterval
}

// StartTime returns the start position, never negative.
func (c *Config) StartTime() time.Duration {
	return max(c.Playback.StartTime, 0)
}

// NowPlayingEnabled reports whether the system media surface is used (default: true).
func (c *Config) NowPlayingEnabled() bool {
	if c.NowPlaying.Enabled == nil {
		return true
	}
	return *c.NowPlaying.Enabled
}

// Controls parses the now-playing control mode.
func (c *Config) Controls() (nowplaying.Controls, error) {
	return nowplaying.ParseControls(c.NowPlaying.Controls)
}

// GetAudioSession returns the configured audio session, defaults filled in.
func (c *Config) GetAudioSession() (platform.AudioSession, error) {
	a := c.AudioSession
	return platform.ParseAudioSession(a.Category, a.Mode, a.Options)
}

// LogLevel parses the log level (default: info).
func (c *Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(c.Log.Level)
}

// LogFile returns the log file path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}
