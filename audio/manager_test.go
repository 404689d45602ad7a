package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/arlobryn/soundbank/tone"
)

// fakeOutput is an in-memory speaker stand-in. Tests drain the master
// streamer by hand to simulate the render loop.
type fakeOutput struct {
	mu      sync.Mutex
	initErr error
	inits   int
	playing []beep.Streamer
}

func (f *fakeOutput) init(rate beep.SampleRate, bufferSize int) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inits++
	return nil
}

func (f *fakeOutput) play(s beep.Streamer) { f.playing = append(f.playing, s) }
func (f *fakeOutput) lock()                { f.mu.Lock() }
func (f *fakeOutput) unlock()              { f.mu.Unlock() }
func (f *fakeOutput) clear()               { f.playing = nil }

// drain renders n chunks from the master stage, as the speaker would.
func (f *fakeOutput) drain(chunks, chunkSize int) {
	buf := make([][2]float64, chunkSize)
	for i := 0; i < chunks; i++ {
		f.mu.Lock()
		for _, s := range f.playing {
			s.Stream(buf)
		}
		f.mu.Unlock()
	}
}

func newTestManager(t *testing.T, cfg *Config) (*Manager, *fakeOutput) {
	t.Helper()
	m := New(cfg)
	out := &fakeOutput{}
	m.out = out
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m, out
}

// registerTone binds a short synthesized sound and returns its length in
// frames.
func registerTone(m *Manager, name string, d time.Duration) int {
	samples := tone.Synthesize(440, d, tone.DefaultDecay, m.cfg.SampleRate)
	m.bank.Set(name, tone.Buffer(samples, beep.SampleRate(m.cfg.SampleRate)))
	return len(samples)
}

// TestSetVolumeClamps verifies out-of-range volumes are clamped to [0, 1].
func TestSetVolumeClamps(t *testing.T) {
	m, _ := newTestManager(t, nil)

	cases := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{-1000, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
		{1e9, 1},
	}
	for _, c := range cases {
		m.SetVolume(c.in)
		if got := m.Volume(); got != c.want {
			t.Errorf("SetVolume(%v): stored %v, want %v", c.in, got, c.want)
		}
	}

	m.SetVolume(0)
	if !m.master.Silent {
		t.Error("zero volume should silence the master stage")
	}
	m.SetVolume(0.5)
	if m.master.Silent {
		t.Error("non-zero volume should un-silence the master stage")
	}
}

// TestPlayUnknownName verifies playing an unregistered name is a no-op
// returning the no-playback signal.
func TestPlayUnknownName(t *testing.T) {
	m, out := newTestManager(t, nil)

	if p := m.Play("nothing-here"); p != nil {
		t.Error("Play of unknown name should return nil")
	}
	out.drain(2, 256) // must not panic with an empty mixer
}

// TestPlayBeforeInit verifies play degrades to the no-op path before Init.
func TestPlayBeforeInit(t *testing.T) {
	m := New(nil)
	m.out = &fakeOutput{}
	registerTone(m, "early", 10*time.Millisecond)

	if p := m.Play("early"); p != nil {
		t.Error("Play before Init should return nil")
	}
}

// TestSilentMode verifies a failing device degrades the manager instead of
// erroring, and playback becomes a no-op.
func TestSilentMode(t *testing.T) {
	m := New(nil)
	out := &fakeOutput{initErr: errors.New("no device")}
	m.out = out

	if err := m.Init(); err != nil {
		t.Fatalf("Init should swallow device errors, got %v", err)
	}
	registerTone(m, "click", 10*time.Millisecond)
	if p := m.Play("click"); p != nil {
		t.Error("Play in silent mode should return nil")
	}
}

// TestInitIdempotent verifies repeated Init calls touch the device once.
func TestInitIdempotent(t *testing.T) {
	m, out := newTestManager(t, nil)
	if err := m.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if out.inits != 1 {
		t.Errorf("device initialized %d times, want 1", out.inits)
	}
}

// TestPlayLifecycle verifies a playback handle runs to its natural end.
func TestPlayLifecycle(t *testing.T) {
	m, out := newTestManager(t, nil)
	frames := registerTone(m, "ping", 20*time.Millisecond)

	p := m.Play("ping")
	if p == nil {
		t.Fatal("Play should return a handle for a registered sound")
	}
	if !p.Playing() || p.Done() {
		t.Error("fresh playback should be live")
	}

	out.drain(frames/256+2, 256)

	if p.Playing() {
		t.Error("playback should have ended after draining")
	}
	if !p.Done() || p.Stopped() {
		t.Error("natural completion should end, not stop, the instance")
	}
}

// TestStopIdempotent verifies stopping is immediate, repeatable and safe
// after completion.
func TestStopIdempotent(t *testing.T) {
	m, out := newTestManager(t, nil)
	registerTone(m, "ping", 20*time.Millisecond)

	p := m.Play("ping")
	p.Stop()
	if !p.Stopped() || p.Playing() {
		t.Error("Stop should immediately terminate the instance")
	}
	p.Stop() // no-op
	if !p.Stopped() {
		t.Error("second Stop should leave the instance stopped")
	}

	out.drain(4, 256)
	if !p.Stopped() {
		t.Error("draining must not resurrect a stopped instance")
	}
}

// TestLoopedPlaybackRunsUntilStopped verifies looped sounds never end on
// their own.
func TestLoopedPlaybackRunsUntilStopped(t *testing.T) {
	m, out := newTestManager(t, nil)
	frames := registerTone(m, "engine", 10*time.Millisecond)

	p := m.Play("engine", PlayOptions{Loop: true})
	if p == nil {
		t.Fatal("Play should return a handle")
	}

	out.drain(10*frames/256+10, 256)
	if !p.Playing() {
		t.Error("looped playback should still be live after many cycles")
	}

	p.Stop()
	if !p.Stopped() {
		t.Error("looped playback should stop on demand")
	}
}

// TestPlaybackRateFinishesFaster verifies a higher rate consumes the buffer
// in fewer rendered frames.
func TestPlaybackRateFinishesFaster(t *testing.T) {
	m, out := newTestManager(t, nil)
	registerTone(m, "voice", 40*time.Millisecond)

	chunksUntilDone := func(rate float64) int {
		p := m.Play("voice", PlayOptions{Rate: rate})
		if p == nil {
			t.Fatal("Play should return a handle")
		}
		for i := 1; i <= 100; i++ {
			out.drain(1, 256)
			if p.Done() {
				return i
			}
		}
		t.Fatalf("playback at rate %v never finished", rate)
		return 0
	}

	normal := chunksUntilDone(1.0)
	fast := chunksUntilDone(2.0)
	if fast >= normal {
		t.Errorf("rate 2.0 took %d chunks, rate 1.0 took %d; want faster", fast, normal)
	}
}

// TestConcurrentInstancesShareBuffer verifies two plays of one sound run
// independently off the same buffer.
func TestConcurrentInstancesShareBuffer(t *testing.T) {
	m, out := newTestManager(t, nil)
	frames := registerTone(m, "ping", 20*time.Millisecond)

	p1 := m.Play("ping")
	p2 := m.Play("ping")
	if p1 == nil || p2 == nil {
		t.Fatal("both plays should return handles")
	}
	if p1 == p2 {
		t.Fatal("each play call must create a distinct instance")
	}

	p1.Stop()
	if !p2.Playing() {
		t.Error("stopping one instance must not affect the other")
	}

	out.drain(frames/256+2, 256)
	if !p2.Done() {
		t.Error("surviving instance should finish naturally")
	}
}

// TestMusicSlotReplacement verifies starting a second track stops the first
// and leaves exactly one active background instance.
func TestMusicSlotReplacement(t *testing.T) {
	m, _ := newTestManager(t, nil)
	registerTone(m, "theme-a", 10*time.Millisecond)
	registerTone(m, "theme-b", 10*time.Millisecond)

	pa := m.PlayMusic("theme-a")
	if pa == nil || !pa.Playing() {
		t.Fatal("first track should start")
	}

	pb := m.PlayMusic("theme-b")
	if pb == nil || !pb.Playing() {
		t.Fatal("second track should start")
	}
	if !pa.Stopped() {
		t.Error("first track should be stopped by the replacement")
	}
	if m.music != pb {
		t.Error("music slot should hold the new track")
	}
}

// TestStopMusicIdempotent verifies StopMusic is safe with and without a
// current track.
func TestStopMusicIdempotent(t *testing.T) {
	m, _ := newTestManager(t, nil)

	m.StopMusic() // nothing playing, no-op
	m.StopMusic()

	registerTone(m, "theme", 10*time.Millisecond)
	p := m.PlayMusic("theme")
	m.StopMusic()
	if !p.Stopped() {
		t.Error("StopMusic should stop the current track")
	}
	if m.music != nil {
		t.Error("music slot should be cleared")
	}
	m.StopMusic() // already stopped, no-op
}

// TestMuteStopsMusicAndBlocksPlay verifies the mute contract: music is
// force-stopped, plays are no-ops, unmute does not resume.
func TestMuteStopsMusicAndBlocksPlay(t *testing.T) {
	m, _ := newTestManager(t, nil)
	registerTone(m, "theme", 10*time.Millisecond)
	registerTone(m, "click", 10*time.Millisecond)

	p := m.PlayMusic("theme")
	if got := m.SetMuted(true); !got {
		t.Error("SetMuted(true) should report muted")
	}
	if !p.Stopped() {
		t.Error("muting should stop background music")
	}
	if m.music != nil {
		t.Error("muting should clear the music slot")
	}
	if q := m.Play("click"); q != nil {
		t.Error("Play while muted should return nil")
	}

	if got := m.SetMuted(false); got {
		t.Error("SetMuted(false) should report unmuted")
	}
	if m.music != nil {
		t.Error("unmuting must not resume music")
	}
	if q := m.Play("click"); q == nil {
		t.Error("Play after unmute should work again")
	}
}

// TestToggleMuteRoundTrip verifies two toggles restore the original state.
func TestToggleMuteRoundTrip(t *testing.T) {
	m, _ := newTestManager(t, nil)

	initial := m.IsMuted()
	first := m.ToggleMute()
	if first == initial {
		t.Error("first toggle should flip the state")
	}
	second := m.ToggleMute()
	if second != initial {
		t.Error("second toggle should restore the original state")
	}
}

// TestDisabledConfigStartsMuted verifies Enabled=false means muted from
// construction.
func TestDisabledConfigStartsMuted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	m, _ := newTestManager(t, cfg)

	if !m.IsMuted() {
		t.Error("disabled config should start muted")
	}
	registerTone(m, "click", 10*time.Millisecond)
	if p := m.Play("click"); p != nil {
		t.Error("Play should be a no-op while muted")
	}
}

// TestCreateSimpleSoundOverwrites verifies re-creating a stinger leaves a
// single registry entry.
func TestCreateSimpleSoundOverwrites(t *testing.T) {
	m, _ := newTestManager(t, nil)

	name1 := m.CreateSimpleSound(tone.SimpleClick)
	before := m.Bank().Len()
	name2 := m.CreateSimpleSound(tone.SimpleClick)

	if name1 != name2 {
		t.Errorf("stinger names differ: %q vs %q", name1, name2)
	}
	if m.Bank().Len() != before {
		t.Errorf("re-creation changed entry count: %d -> %d", before, m.Bank().Len())
	}
	if !m.Bank().Has(name1) {
		t.Error("stinger missing from bank")
	}
}

// TestPlaySimple verifies the synthesize-then-play composition.
func TestPlaySimple(t *testing.T) {
	m, out := newTestManager(t, nil)

	p := m.PlaySimple(tone.SimpleSuccess)
	if p == nil {
		t.Fatal("PlaySimple should return a handle")
	}
	if !m.Bank().Has(tone.SimpleSuccess.Name()) {
		t.Error("PlaySimple should register the stinger")
	}
	out.drain(60, 256)
	if !p.Done() {
		t.Error("stinger should finish")
	}
}

// TestClose verifies Close clears playback state and allows re-init.
func TestClose(t *testing.T) {
	m, out := newTestManager(t, nil)
	registerTone(m, "theme", 10*time.Millisecond)
	p := m.PlayMusic("theme")

	m.Close()
	if !p.Stopped() {
		t.Error("Close should stop background music")
	}
	if len(out.playing) != 0 {
		t.Error("Close should clear the output")
	}

	if err := m.Init(); err != nil {
		t.Errorf("re-Init after Close: %v", err)
	}
}
