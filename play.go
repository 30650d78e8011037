package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/mediakit/internal/app"
	"github.com/llehouerou/mediakit/internal/caption"
	"github.com/llehouerou/mediakit/internal/config"
	"github.com/llehouerou/mediakit/internal/errmsg"
	"github.com/llehouerou/mediakit/internal/icons"
	"github.com/llehouerou/mediakit/internal/logging"
	"github.com/llehouerou/mediakit/internal/mpris"
	"github.com/llehouerou/mediakit/internal/notify"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/platform/mpvplayer"
	"github.com/llehouerou/mediakit/internal/playback"
	"github.com/llehouerou/mediakit/internal/playlist"
	"github.com/llehouerou/mediakit/internal/state"
	"github.com/llehouerou/mediakit/internal/stderr"
)

// captionLookups bounds concurrent caption lookups at startup.
const captionLookups = 4

// captionTimeout bounds caption lookups for the whole queue.
const captionTimeout = 20 * time.Second

type playFlags struct {
	config         string
	start          time.Duration
	autoplay       bool
	captions       string
	lyrics         bool
	seekInterval   time.Duration
	controls       string
	noSystemPlayer bool
	video          bool
	title          string
	artist         string
	album          string
	logLevel       string
	notify         bool
	resume         bool

	startSet bool // --start given explicitly; disables resume
}

func newPlayCmd() *cobra.Command {
	f := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play <url>...",
		Short: "Play one or more media files or URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			}
			return runPlay(cmd.Context(), cfg, f, args)
		},
	}
	bindFlags(cmd, f)
	return cmd
}

func bindFlags(cmd *cobra.Command, f *playFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "Config file (default: $XDG_CONFIG_HOME/mediakit/config.toml, ./config.toml)")
	fl.DurationVar(&f.start, "start", 0, "Start position, e.g. 1m30s")
	fl.BoolVar(&f.autoplay, "autoplay", false, "Start playing as soon as the media is ready")
	fl.StringVar(&f.captions, "captions", "", "Caption file, directory or URL")
	fl.BoolVar(&f.lyrics, "lyrics", false, "Look up synced lyrics when no caption file is found")
	fl.DurationVar(&f.seekInterval, "seek-interval", 0, "Skip interval (default: 15s)")
	fl.StringVar(&f.controls, "controls", "", "System player buttons: skip or track")
	fl.BoolVar(&f.noSystemPlayer, "no-system-player", false, "Do not register system now-playing controls")
	fl.BoolVar(&f.video, "video", false, "Enable video output")
	fl.StringVar(&f.title, "title", "", "Title of the first item")
	fl.StringVar(&f.artist, "artist", "", "Artist of the first item")
	fl.StringVar(&f.album, "album", "", "Album of the first item")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fl.BoolVar(&f.notify, "notify", false, "Show desktop notifications on track change")
	fl.BoolVar(&f.resume, "resume", false, "Start each item where it was last stopped")
}

// loadConfig reads the config files and applies the flags set on the command line.
func loadConfig(cmd *cobra.Command, f *playFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.config != "" {
		cfg, err = config.LoadFile(f.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("start") {
		cfg.Playback.StartTime = f.start
		f.startSet = true
	}
	if changed("resume") {
		cfg.Playback.Resume = f.resume
	}
	if changed("autoplay") {
		cfg.Playback.Autoplay = f.autoplay
	}
	if changed("seek-interval") {
		cfg.Playback.SeekInterval = f.seekInterval
	}
	if changed("controls") {
		cfg.NowPlaying.Controls = f.controls
	}
	if changed("no-system-player") {
		enabled := !f.noSystemPlayer
		cfg.NowPlaying.Enabled = &enabled
	}
	if changed("captions") {
		cfg.Captions.Path = f.captions
	}
	if changed("lyrics") {
		cfg.Captions.Lyrics = f.lyrics
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("notify") {
		cfg.Notify.Enabled = f.notify
	}
	return cfg, nil
}

func runPlay(ctx context.Context, cfg *config.Config, f *playFlags, urls []string) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	controls, err := cfg.Controls()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	session, err := cfg.GetAudioSession()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpAudioSession, err))
	}

	logger, logCloser, err := logging.New(logging.Config{Level: level, File: cfg.LogFile()})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer logCloser.Close()

	icons.Init(cfg.UI.Icons)

	// libmpv writes to stderr directly, which would corrupt the TUI.
	if err := stderr.Start(logger); err != nil {
		logger.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	engine, err := mpvplayer.New(mpvplayer.Options{Video: f.video, Logger: logger})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpEngineStart, err))
	}
	defer engine.Close()

	var center nowplaying.Center
	if c, err := mpris.New("mediakit", logger); err != nil {
		logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNowPlaying, err))
	} else {
		defer c.Close()
		center = c
	}

	var resume *state.Manager
	if cfg.Playback.Resume {
		store, err := state.Open()
		if err != nil {
			logger.Warn().Err(err).Msg("resume positions unavailable")
		} else {
			defer store.Close()
			resume = store
		}
	}

	tracks := buildTracks(ctx, cfg, f, urls, logger)
	if resume != nil && !f.startSet {
		for i := range tracks {
			tracks[i].StartTime = resume.Resume(tracks[i].URL)
		}
	}
	queue := playlist.NewQueue(tracks...)
	first, _ := queue.Next()

	player := playback.New(engine, center, playback.Options{
		Autoplay:           cfg.Playback.Autoplay,
		StartTime:          cfg.StartTime(),
		SeekInterval:       cfg.SeekInterval(),
		ShowInSystemPlayer: cfg.NowPlayingEnabled(),
		AudioSession:       &session,
		Controls:           controls,
		Navigator:          queue,
		Logger:             logger,
	})

	// Background subscribers finish once the player closes.
	var bg sync.WaitGroup
	if resume != nil {
		bg.Go(func() { state.Record(ctx, player, resume, logger) })
	}
	if cfg.Notify.Enabled {
		notifier, err := notify.New()
		if err != nil {
			logger.Warn().Err(err).Msg("desktop notifications unavailable")
		} else {
			bg.Go(func() { notify.Watch(ctx, player, notifier, logger) })
		}
	}

	model := app.New(player, app.Options{ShowCaptions: true, Logger: logger})
	player.Load(first)
	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()

	_ = player.Close()
	bg.Wait()
	if runErr != nil {
		return fmt.Errorf("run program: %w", runErr)
	}
	return nil
}

// buildTracks turns the command line into queue entries, resolving captions
// concurrently. Caption failures are logged and leave the track without captions.
func buildTracks(ctx context.Context, cfg *config.Config, f *playFlags, urls []string, logger zerolog.Logger) []playback.Track {
	tracks := make([]playback.Track, len(urls))
	for i, u := range urls {
		tracks[i] = playback.Track{URL: u}
	}
	tracks[0].Metadata = nowplaying.Metadata{Title: f.title, Artist: f.artist, Album: f.album}

	ctx, cancel := context.WithTimeout(ctx, captionTimeout)
	defer cancel()

	fetcher := caption.NewFetcher(nil, nil)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(captionLookups)
	for i := range tracks {
		src := captionSource(cfg, tracks[i], i)
		g.Go(func() error {
			track, err := fetcher.Resolve(gctx, tracks[i].URL, src)
			switch {
			case err == nil:
				tracks[i].Captions = track
			case errors.Is(err, caption.ErrNoCaptions):
				logger.Debug().Str("url", tracks[i].URL).Msg("no captions")
			default:
				logger.Warn().Err(err).Str("url", tracks[i].URL).Msg(errmsg.Format(errmsg.OpCaptionLoad, err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return tracks
}

// captionSource applies an explicit caption file or URL to the first item only.
// A directory is searched for every item.
func captionSource(cfg *config.Config, t playback.Track, index int) caption.Source {
	src := caption.Source{
		Lyrics: cfg.Captions.Lyrics,
		Artist: t.Metadata.Artist,
		Title:  t.Metadata.Title,
	}
	loc := cfg.Captions.Path
	if loc != "" && (index == 0 || isDir(loc)) {
		src.Location = loc
	}
	return src
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
