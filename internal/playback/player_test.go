package playback

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/llehouerou/mediakit/internal/caption"
	"github.com/llehouerou/mediakit/internal/nowplaying"
	"github.com/llehouerou/mediakit/internal/platform"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	player *Player
	engine *platform.Mock
	center *nowplaying.Mock
}

func newEngine() *platform.Mock {
	e := platform.NewMock()
	e.SetDuration("a.mp4", 100*time.Second)
	e.SetDuration("b.mp4", 200*time.Second)
	return e
}

func start(t *testing.T, engine *platform.Mock, opts Options) fixture {
	t.Helper()
	center := nowplaying.NewMock()
	opts.Logger = zerolog.Nop()
	p := New(engine, center, opts)
	t.Cleanup(func() {
		_ = p.Close()
		_ = engine.Close()
	})
	return fixture{player: p, engine: engine, center: center}
}

func waitReady(t *testing.T, p *Player, url string) State {
	t.Helper()
	require.Eventually(t, func() bool {
		s := p.Snapshot()
		return s.URL == url && !s.Buffering && s.Duration > 0
	}, waitFor, tick)
	return p.Snapshot()
}

func waitErr(t *testing.T, p *Player) *Error {
	t.Helper()
	require.Eventually(t, func() bool { return p.Snapshot().Err != nil }, waitFor, tick)
	return p.Snapshot().Err
}

func TestPlayer_LoadSequence(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", StartTime: 10 * time.Second, Autoplay: true})

	s := waitReady(t, f.player, "a.mp4")
	assert.Equal(t, 100*time.Second, s.Duration)
	assert.Equal(t, 10*time.Second, s.Time)
	assert.InDelta(t, 0.1, s.Progress, 1e-9)
	assert.False(t, s.Paused)
	assert.Nil(t, s.Err)

	assert.Equal(t, []string{"a.mp4"}, f.engine.ReplaceCalls())
	assert.Equal(t, []time.Duration{10 * time.Second}, f.engine.SeekCalls())
	assert.Equal(t, []float64{1.0}, f.engine.PrerollCalls())
	assert.Equal(t, 1, f.engine.PlayCalls())
}

func TestPlayer_NoAutoplayStaysPaused(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4"})

	s := waitReady(t, f.player, "a.mp4")
	assert.True(t, s.Paused)
	assert.Equal(t, 0, f.engine.PlayCalls())
	assert.Empty(t, f.engine.SeekCalls(), "no start time means no seek")
}

func TestPlayer_NoURLIsIdle(t *testing.T) {
	f := start(t, newEngine(), Options{})

	s := f.player.Snapshot()
	assert.False(t, s.IsLoaded())
	assert.False(t, s.Buffering)
	assert.Empty(t, f.engine.ReplaceCalls())
	assert.ErrorIs(t, f.player.Play(), ErrNoTrack)
}

func TestPlayer_BufferingHeldUntilPreroll(t *testing.T) {
	engine := newEngine()
	release := engine.BlockPreroll(false)
	f := start(t, engine, Options{URL: "a.mp4"})
	defer release()

	require.Eventually(t, func() bool { return len(engine.PrerollCalls()) == 1 }, waitFor, tick)
	assert.True(t, f.player.Snapshot().Buffering)

	engine.Emit(platform.BufferChanged{Buffering: false, Buffered: 5 * time.Second})
	require.Eventually(t, func() bool {
		return f.player.Snapshot().BufferTime == 5*time.Second
	}, waitFor, tick)
	assert.True(t, f.player.Snapshot().Buffering, "preroll still pending")

	release()
	s := waitReady(t, f.player, "a.mp4")
	assert.InDelta(t, 0.05, s.BufferProgress, 1e-9)

	engine.Emit(platform.BufferChanged{Buffering: true, Buffered: 6 * time.Second, CacheSpeed: 2048})
	require.Eventually(t, func() bool { return f.player.Snapshot().Buffering }, waitFor, tick)
	assert.Equal(t, int64(2048), f.player.Snapshot().CacheSpeed)
}

func TestPlayer_ProgressAndCaptions(t *testing.T) {
	track := caption.NewTrack([]caption.Caption{
		{Start: time.Second, End: 3 * time.Second, Text: "first"},
		{Start: 4 * time.Second, End: 6 * time.Second, Text: "second"},
	})
	f := start(t, newEngine(), Options{URL: "a.mp4", Captions: track})
	waitReady(t, f.player, "a.mp4")
	sub := f.player.Subscribe()

	f.engine.Emit(platform.TimeChanged{Time: 2 * time.Second})
	select {
	case c := <-sub.CaptionChanged:
		require.NotNil(t, c.Caption)
		assert.Equal(t, "first", c.Caption.Text)
	case <-time.After(waitFor):
		t.Fatal("no caption change")
	}
	s := f.player.Snapshot()
	assert.InDelta(t, 0.02, s.Progress, 1e-9)

	f.engine.Emit(platform.TimeChanged{Time: 3500 * time.Millisecond})
	select {
	case c := <-sub.CaptionChanged:
		assert.Nil(t, c.Caption, "gap between captions")
	case <-time.After(waitFor):
		t.Fatal("no caption change")
	}

	f.engine.Emit(platform.TimeChanged{Time: 5 * time.Second})
	require.Eventually(t, func() bool {
		c := f.player.Snapshot().Caption
		return c != nil && c.Text == "second"
	}, waitFor, tick)
}

func TestPlayer_SetCaptionsReevaluates(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", StartTime: 2 * time.Second})
	waitReady(t, f.player, "a.mp4")
	assert.Nil(t, f.player.Snapshot().Caption)

	f.player.SetCaptions(caption.NewTrack([]caption.Caption{{Start: 0, End: 5 * time.Second, Text: "hello"}}))
	c := f.player.Snapshot().Caption
	require.NotNil(t, c)
	assert.Equal(t, "hello", c.Text)

	f.player.SetCaptions(nil)
	assert.Nil(t, f.player.Snapshot().Caption)
}

func TestPlayer_LoadFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name      string
		setup     func(*platform.Mock)
		startTime time.Duration
		want      ErrorKind
	}{
		{"replace", func(e *platform.Mock) { e.SetReplaceError(boom) }, 0, ErrorAsset},
		{"duration", func(e *platform.Mock) { e.SetDurationError(boom) }, 0, ErrorAsset},
		{"seek", func(e *platform.Mock) { e.SetSeekError(boom) }, 5 * time.Second, ErrorSeek},
		{"preroll", func(e *platform.Mock) { e.SetPrerollError(boom) }, 0, ErrorPreroll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine()
			tt.setup(engine)
			f := start(t, engine, Options{URL: "a.mp4", StartTime: tt.startTime, Autoplay: true})
			sub := f.player.Subscribe()

			perr := waitErr(t, f.player)
			assert.Equal(t, tt.want, perr.Kind)
			assert.Equal(t, "a.mp4", perr.URL)
			assert.ErrorIs(t, perr, boom)

			s := f.player.Snapshot()
			assert.False(t, s.Buffering)
			assert.True(t, s.Paused)
			assert.Equal(t, 0, engine.PlayCalls())

			select {
			case e := <-sub.Error:
				assert.Same(t, perr, e)
			case <-time.After(waitFor):
				t.Fatal("no error event")
			}
		})
	}
}

func TestPlayer_StatusFailure(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4"})
	waitReady(t, f.player, "a.mp4")

	decode := errors.New("decoder error")
	f.engine.Emit(platform.StatusChanged{Status: platform.StatusFailed, Err: decode})

	perr := waitErr(t, f.player)
	assert.Equal(t, ErrorStatus, perr.Kind)
	assert.ErrorIs(t, perr, decode)
}

func TestPlayer_LiveStreamWithoutDuration(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "https://radio.example/live", Autoplay: true})

	require.Eventually(t, func() bool {
		s := f.player.Snapshot()
		return !s.Buffering && !s.Paused
	}, waitFor, tick)
	s := f.player.Snapshot()
	assert.Nil(t, s.Err)
	assert.Equal(t, time.Duration(0), s.Duration)
	assert.Zero(t, s.Progress)
	assert.Equal(t, 1, f.engine.PlayCalls())
}

func TestPlayer_StatusFailureEndsLoad(t *testing.T) {
	engine := newEngine()
	release := engine.BlockPreroll(false)
	f := start(t, engine, Options{URL: "a.mp4", Autoplay: true})
	defer release()

	require.Eventually(t, func() bool { return len(engine.PrerollCalls()) == 1 }, waitFor, tick)
	engine.Emit(platform.StatusChanged{Status: platform.StatusFailed, Err: errors.New("network dropped")})
	perr := waitErr(t, f.player)
	assert.Equal(t, ErrorStatus, perr.Kind)

	engine.Emit(platform.BufferChanged{Buffering: false, Buffered: time.Second})
	require.Eventually(t, func() bool {
		return f.player.Snapshot().BufferTime == time.Second
	}, waitFor, tick)
	assert.False(t, f.player.Snapshot().Buffering, "a failed load no longer holds buffering")

	release()
	require.NoError(t, f.player.Close())

	s := f.player.Snapshot()
	assert.Equal(t, 0, engine.PlayCalls(), "failed load must not autoplay")
	assert.True(t, s.Paused)
	assert.Equal(t, time.Duration(0), s.Duration)
	require.NotNil(t, s.Err)
	assert.Equal(t, ErrorStatus, s.Err.Kind)
}

func TestPlayer_StatusFailureWithoutCause(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4"})
	waitReady(t, f.player, "a.mp4")

	f.engine.Emit(platform.StatusChanged{Status: platform.StatusReadyToPlay})
	f.engine.Emit(platform.StatusChanged{Status: platform.StatusFailed})

	perr := waitErr(t, f.player)
	assert.Equal(t, ErrorStatus, perr.Kind)
	assert.Error(t, perr.Unwrap())
}

func TestPlayer_SetURLResetsError(t *testing.T) {
	engine := newEngine()
	engine.SetReplaceError(errors.New("unreachable"))
	f := start(t, engine, Options{URL: "a.mp4"})
	waitErr(t, f.player)

	engine.SetReplaceError(nil)
	f.player.SetURL("b.mp4")

	s := f.player.Snapshot()
	assert.Nil(t, s.Err, "error cleared as soon as a new url is set")
	assert.True(t, s.Buffering)
	assert.Equal(t, "b.mp4", s.URL)

	s = waitReady(t, f.player, "b.mp4")
	assert.Equal(t, 200*time.Second, s.Duration)
	assert.Equal(t, []string{"a.mp4", "b.mp4"}, engine.ReplaceCalls())
	assert.Len(t, engine.PrerollCalls(), 1)
}

func TestPlayer_StaleLoadIsDiscarded(t *testing.T) {
	for _, honor := range []bool{false, true} {
		t.Run(map[bool]string{false: "ignores cancel", true: "honors cancel"}[honor], func(t *testing.T) {
			engine := newEngine()
			release := engine.BlockPreroll(honor)
			f := start(t, engine, Options{URL: "a.mp4"})
			defer release()

			require.Eventually(t, func() bool { return len(engine.PrerollCalls()) == 1 }, waitFor, tick)

			f.player.SetURL("b.mp4")
			waitReady(t, f.player, "b.mp4")

			release()
			require.NoError(t, f.player.Close())

			s := f.player.Snapshot()
			assert.Equal(t, "b.mp4", s.URL)
			assert.Equal(t, 200*time.Second, s.Duration)
			assert.Nil(t, s.Err)
		})
	}
}

func TestPlayer_SystemPlayerWaitsForObservation(t *testing.T) {
	f := start(t, newEngine(), Options{ShowInSystemPlayer: true})
	assert.Empty(t, f.center.Commands(), "nothing registered before time observation")
	assert.Equal(t, 0, f.center.SetHandlersCalls())

	f.player.SetURL("a.mp4")
	waitReady(t, f.player, "a.mp4")

	require.Eventually(t, func() bool { return f.center.LastInfo() != nil }, waitFor, tick)
	assert.Equal(t, []nowplaying.Command{
		nowplaying.CommandPlay,
		nowplaying.CommandPause,
		nowplaying.CommandTogglePlayPause,
		nowplaying.CommandSkipForward,
		nowplaying.CommandSkipBackward,
		nowplaying.CommandChangePosition,
	}, f.center.Commands())
	assert.Equal(t, []time.Duration{DefaultSeekInterval}, f.center.Intervals())

	info := f.center.LastInfo()
	require.NotNil(t, info)
	assert.Equal(t, "a.mp4", info.URL)
	assert.Equal(t, nowplaying.StatusPaused, info.Status)
}

func TestPlayer_SystemPlayerToggle(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", Controls: nowplaying.ControlsTrack})
	waitReady(t, f.player, "a.mp4")
	assert.Equal(t, 0, f.center.SetHandlersCalls())

	f.player.SetShowInSystemPlayer(true)
	assert.Equal(t, []nowplaying.Command{
		nowplaying.CommandPlay,
		nowplaying.CommandPause,
		nowplaying.CommandTogglePlayPause,
		nowplaying.CommandNextTrack,
		nowplaying.CommandPreviousTrack,
		nowplaying.CommandChangePosition,
	}, f.center.Commands())
	assert.Empty(t, f.center.Intervals(), "track controls never publish a skip interval")

	f.player.SetShowInSystemPlayer(true)
	assert.Equal(t, 1, f.center.SetHandlersCalls(), "enabling twice registers once")

	f.player.SetShowInSystemPlayer(false)
	assert.Empty(t, f.center.Commands())
	assert.Nil(t, f.center.LastInfo())
	assert.Empty(t, f.player.RemoteCommands())
}

func TestPlayer_ControlsAndIntervalChanges(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", ShowInSystemPlayer: true, SeekInterval: 10 * time.Second})
	waitReady(t, f.player, "a.mp4")
	require.Eventually(t, func() bool { return f.center.LastInfo() != nil }, waitFor, tick)
	require.Len(t, f.center.Intervals(), 1)

	f.player.SetSeekInterval(30 * time.Second)
	assert.Equal(t, 30*time.Second, f.player.SeekInterval())
	assert.Equal(t, []time.Duration{10 * time.Second, 30 * time.Second}, f.center.Intervals())

	f.player.SetControls(nowplaying.ControlsTrack)
	assert.Equal(t, nowplaying.ControlsTrack, f.player.Controls())
	assert.Contains(t, f.center.Commands(), nowplaying.CommandNextTrack)
	assert.NotContains(t, f.center.Commands(), nowplaying.CommandSkipForward)

	f.player.SetSeekInterval(45 * time.Second)
	assert.Len(t, f.center.Intervals(), 2, "interval not pushed in track mode")
}

func TestPlayer_RemoteSkipCommands(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", ShowInSystemPlayer: true, StartTime: 50 * time.Second})
	waitReady(t, f.player, "a.mp4")
	require.Eventually(t, func() bool { return len(f.center.Commands()) > 0 }, waitFor, tick)

	require.NoError(t, f.center.Trigger(nowplaying.Request{Command: nowplaying.CommandSkipForward, Interval: 15 * time.Second}))
	assert.Equal(t, 65*time.Second, f.player.Snapshot().Time)

	require.NoError(t, f.center.Trigger(nowplaying.Request{Command: nowplaying.CommandSkipBackward}))
	assert.Equal(t, 50*time.Second, f.player.Snapshot().Time, "zero interval uses the configured one")

	require.NoError(t, f.center.Trigger(nowplaying.Request{Command: nowplaying.CommandChangePosition, Position: 500 * time.Second}))
	assert.Equal(t, 100*time.Second, f.player.Snapshot().Time, "clamped to duration")

	require.NoError(t, f.center.Trigger(nowplaying.Request{Command: nowplaying.CommandPlay}))
	assert.False(t, f.player.Snapshot().Paused)
	info := f.center.LastInfo()
	require.NotNil(t, info)
	assert.Equal(t, nowplaying.StatusPlaying, info.Status)
	assert.InDelta(t, 1.0, info.Rate, 1e-9)

	require.NoError(t, f.center.Trigger(nowplaying.Request{Command: nowplaying.CommandTogglePlayPause}))
	assert.True(t, f.player.Snapshot().Paused)
}

func TestPlayer_SeekFailure(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4"})
	waitReady(t, f.player, "a.mp4")

	f.engine.SetSeekError(errors.New("not seekable"))
	err := f.player.SeekTo(10 * time.Second)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorSeek, perr.Kind)
	assert.Equal(t, time.Duration(0), f.player.Snapshot().Time)
}

type fakeNavigator struct {
	next, prev []Track
}

func (n *fakeNavigator) Next() (Track, bool) {
	if len(n.next) == 0 {
		return Track{}, false
	}
	t := n.next[0]
	n.next = n.next[1:]
	return t, true
}

func (n *fakeNavigator) Previous() (Track, bool) {
	if len(n.prev) == 0 {
		return Track{}, false
	}
	t := n.prev[0]
	n.prev = n.prev[1:]
	return t, true
}

func (n *fakeNavigator) HasNext() bool     { return len(n.next) > 0 }
func (n *fakeNavigator) HasPrevious() bool { return len(n.prev) > 0 }

func (n *fakeNavigator) Position() (index, total int) {
	return len(n.prev), len(n.prev) + len(n.next) + 1
}

func TestPlayer_TrackNavigation(t *testing.T) {
	nav := &fakeNavigator{
		next: []Track{{URL: "b.mp4", Metadata: nowplaying.Metadata{Title: "B"}}},
		prev: []Track{{URL: "a.mp4"}},
	}
	f := start(t, newEngine(), Options{URL: "a.mp4", Navigator: nav, Metadata: nowplaying.Metadata{Title: "A"}})
	waitReady(t, f.player, "a.mp4")

	require.NoError(t, f.player.NextTrack())
	waitReady(t, f.player, "b.mp4")
	assert.Equal(t, "B", f.player.Metadata().Title)

	assert.ErrorIs(t, f.player.NextTrack(), ErrNoTrack)

	require.NoError(t, f.player.PreviousTrack())
	waitReady(t, f.player, "a.mp4")
	assert.Empty(t, f.player.Metadata().Title, "loading a track replaces metadata")
}

func TestPlayer_TrackStartTimeOverrides(t *testing.T) {
	f := start(t, newEngine(), Options{StartTime: 5 * time.Second})

	f.player.Load(Track{URL: "b.mp4", StartTime: 50 * time.Second})
	s := waitReady(t, f.player, "b.mp4")
	assert.Equal(t, 50*time.Second, s.Time)
	assert.Equal(t, []time.Duration{50 * time.Second}, f.engine.SeekCalls())

	f.player.Load(Track{URL: "a.mp4"})
	s = waitReady(t, f.player, "a.mp4")
	assert.Equal(t, 5*time.Second, s.Time, "tracks without a start time use the player's")
}

func TestPlayer_NavigationWithoutNavigator(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4"})
	assert.ErrorIs(t, f.player.NextTrack(), ErrNoTrack)
	assert.ErrorIs(t, f.player.PreviousTrack(), ErrNoTrack)
}

func TestPlayer_SetURLKeepsCaptionsAndMetadata(t *testing.T) {
	track := caption.NewTrack([]caption.Caption{{Start: 0, End: time.Second, Text: "x"}})
	f := start(t, newEngine(), Options{URL: "a.mp4", Captions: track, Metadata: nowplaying.Metadata{Title: "T"}})
	waitReady(t, f.player, "a.mp4")

	f.player.SetURL("b.mp4")
	waitReady(t, f.player, "b.mp4")
	assert.Same(t, track, f.player.Captions())
	assert.Equal(t, "T", f.player.Metadata().Title)
}

func TestPlayer_Setters(t *testing.T) {
	f := start(t, newEngine(), Options{})

	f.player.SetAutoplay(true)
	assert.True(t, f.player.Autoplay())

	f.player.SetStartTime(-time.Second)
	assert.Equal(t, time.Duration(0), f.player.StartTime())
	f.player.SetStartTime(3 * time.Second)
	assert.Equal(t, 3*time.Second, f.player.StartTime())

	f.player.SetSeekInterval(0)
	assert.Equal(t, DefaultSeekInterval, f.player.SeekInterval())

	f.player.SetURL("a.mp4")
	s := waitReady(t, f.player, "a.mp4")
	assert.False(t, s.Paused, "autoplay applies to the next load")
	assert.Equal(t, 3*time.Second, s.Time)
}

func TestPlayer_AudioSession(t *testing.T) {
	spoken := platform.AudioSession{
		Category: platform.CategoryPlayback,
		Mode:     platform.ModeSpokenAudio,
		Options:  []platform.AudioOption{platform.OptionDuckOthers},
	}
	f := start(t, newEngine(), Options{AudioSession: &spoken})
	assert.Equal(t, platform.ModeSpokenAudio, f.player.AudioSession().Mode)
	require.Len(t, f.engine.AudioSessions(), 1)

	err := f.player.SetAudioSession(platform.AudioSession{Category: "loud", Mode: platform.ModeDefault})
	require.Error(t, err)
	assert.Equal(t, platform.ModeSpokenAudio, f.player.AudioSession().Mode, "invalid session keeps the previous one")
	assert.Len(t, f.engine.AudioSessions(), 1, "invalid session never reaches the engine")

	f.engine.SetAudioSessionError(errors.New("device busy"))
	require.Error(t, f.player.SetAudioSession(platform.DefaultAudioSession))
	assert.Equal(t, platform.ModeSpokenAudio, f.player.AudioSession().Mode)
}

func TestPlayer_ItemEnded(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", Autoplay: true})
	waitReady(t, f.player, "a.mp4")

	f.engine.Emit(platform.ItemEnded{})
	require.Eventually(t, func() bool { return f.player.Snapshot().Ended }, waitFor, tick)
	assert.True(t, f.player.Snapshot().Paused)

	require.NoError(t, f.player.SeekTo(0))
	assert.False(t, f.player.Snapshot().Ended)
}

func TestPlayer_ItemEndedAdvancesWithAutoplay(t *testing.T) {
	nav := &fakeNavigator{next: []Track{{URL: "b.mp4"}}}
	f := start(t, newEngine(), Options{URL: "a.mp4", Autoplay: true, Navigator: nav})
	waitReady(t, f.player, "a.mp4")

	f.engine.Emit(platform.ItemEnded{})
	s := waitReady(t, f.player, "b.mp4")
	assert.False(t, s.Paused)
	assert.False(t, s.Ended)

	f.engine.Emit(platform.ItemEnded{})
	require.Eventually(t, func() bool { return f.player.Snapshot().Ended }, waitFor, tick)
	assert.Equal(t, "b.mp4", f.player.Snapshot().URL, "last track stays ended")
}

func TestPlayer_ItemEndedWithoutAutoplayStays(t *testing.T) {
	nav := &fakeNavigator{next: []Track{{URL: "b.mp4"}}}
	f := start(t, newEngine(), Options{URL: "a.mp4", Navigator: nav})
	waitReady(t, f.player, "a.mp4")

	f.engine.Emit(platform.ItemEnded{})
	require.Eventually(t, func() bool { return f.player.Snapshot().Ended }, waitFor, tick)
	assert.Equal(t, []string{"a.mp4"}, f.engine.ReplaceCalls())
	assert.True(t, nav.HasNext())
}

func TestPlayer_InfoCarriesQueueNeighbours(t *testing.T) {
	nav := &fakeNavigator{next: []Track{{URL: "b.mp4"}}}
	f := start(t, newEngine(), Options{URL: "a.mp4", Navigator: nav, ShowInSystemPlayer: true})
	waitReady(t, f.player, "a.mp4")

	info := f.center.LastInfo()
	require.NotNil(t, info)
	assert.True(t, info.HasNext)
	assert.False(t, info.HasPrevious)

	idx, total := f.player.QueuePosition()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, total)
}

func TestPlayer_QueuePositionWithoutNavigator(t *testing.T) {
	f := start(t, newEngine(), Options{})
	idx, total := f.player.QueuePosition()
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0, total)
}

func TestPlayer_ConcurrentSeeksPushLatestInfo(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", ShowInSystemPlayer: true})
	waitReady(t, f.player, "a.mp4")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			_ = f.player.SeekTo(time.Duration(i) * time.Second)
		})
	}
	wg.Wait()

	info := f.center.LastInfo()
	require.NotNil(t, info)
	assert.Equal(t, f.player.Snapshot().Time, info.Elapsed)
}

func TestPlayer_SubscribeAfterClose(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4"})
	waitReady(t, f.player, "a.mp4")
	require.NoError(t, f.player.Close())

	sub := f.player.Subscribe()
	select {
	case <-sub.Done:
	case <-time.After(waitFor):
		t.Fatal("subscription taken after Close never signals Done")
	}
	select {
	case s := <-sub.StateChanged:
		assert.Equal(t, "a.mp4", s.URL)
	default:
		t.Error("closed subscription should still carry the last state")
	}
}

func TestPlayer_CloseIsIdempotent(t *testing.T) {
	f := start(t, newEngine(), Options{URL: "a.mp4", ShowInSystemPlayer: true})
	waitReady(t, f.player, "a.mp4")
	sub := f.player.Subscribe()

	require.NoError(t, f.player.Close())
	require.NoError(t, f.player.Close())

	select {
	case <-sub.Done:
	default:
		t.Fatal("subscription not closed")
	}
	assert.Empty(t, f.center.Commands())
	assert.ErrorIs(t, f.player.Play(), ErrClosed)
	assert.ErrorIs(t, f.player.NextTrack(), ErrClosed)

	f.player.SetURL("b.mp4")
	assert.Equal(t, []string{"a.mp4"}, f.engine.ReplaceCalls(), "closed player ignores loads")
}
