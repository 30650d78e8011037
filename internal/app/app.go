package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/mediakit/internal/keymap"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/playback"
)

// Player is the playback surface driven by the view.
type Player interface {
	Snapshot() playback.State
	Subscribe() *playback.Subscription
	Metadata() nowplaying.Metadata

	Toggle() error
	SeekTo(pos time.Duration) error
	SkipForward(d time.Duration) error
	SkipBackward(d time.Duration) error
	NextTrack() error
	PreviousTrack() error
	SetURL(url string)

	SetShowInSystemPlayer(v bool)
	ShowInSystemPlayer() bool
	SetControls(c nowplaying.Controls)
	Controls() nowplaying.Controls
	SetSeekInterval(d time.Duration)
	SeekInterval() time.Duration
	SetAutoplay(v bool)
	Autoplay() bool
	QueuePosition() (index, total int)
}

var _ Player = (*playback.Player)(nil)

// Options configures the view.
type Options struct {
	ShowCaptions bool
	Logger       zerolog.Logger
}

// Model is the bubbletea model for the player view.
type Model struct {
	player   Player
	sub      *playback.Subscription
	resolver *keymap.Resolver
	keys     helpKeys
	help     help.Model
	logger   zerolog.Logger

	state        playback.State
	metadata     nowplaying.Metadata
	showCaptions bool
	showHelp     bool
	closed       bool

	notice        string
	noticeVersion int

	width  int
	height int
}

// New creates the view and subscribes to player events.
func New(p Player, opts Options) Model {
	r := keymap.NewResolver(keymap.Bindings)
	m := Model{
		player:       p,
		sub:          p.Subscribe(),
		resolver:     r,
		keys:         newHelpKeys(r),
		help:         help.New(),
		logger:       opts.Logger.With().Str("component", "app").Logger(),
		state:        p.Snapshot(),
		metadata:     p.Metadata(),
		showCaptions: opts.ShowCaptions,
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return WatchServiceEvents(m.sub)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StateChangedMsg:
		m.state = playback.State(msg)
		m.metadata = m.player.Metadata()
		return m, WatchServiceEvents(m.sub)

	case CaptionChangedMsg:
		m.state.Caption = msg.Caption
		return m, WatchServiceEvents(m.sub)

	case PlaybackErrorMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Str("url", msg.Err.URL).Msg("playback error")
		}
		return m, WatchServiceEvents(m.sub)

	case ServiceClosedMsg:
		m.closed = true
		return m, tea.Quit

	case NoticeMsg:
		return m.setNotice(string(msg))

	case clearNoticeMsg:
		if msg.version == m.noticeVersion {
			m.notice = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) setNotice(s string) (Model, tea.Cmd) {
	m.noticeVersion++
	m.notice = s
	return m, clearNoticeAfter(m.noticeVersion)
}
