// Package audio plays registered sounds and background music through a
// single shared master volume stage.
package audio

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/arlobryn/soundbank/bank"
	"github.com/arlobryn/soundbank/loader"
	"github.com/arlobryn/soundbank/profile"
	"github.com/arlobryn/soundbank/tone"
)

// resampleQuality is the beep resampler quality for playback-rate changes.
// Rate changes shift pitch along with speed, as the resampler does.
const resampleQuality = 4

// PlayOptions tunes a single play call. The zero value means defaults:
// full volume, normal rate, no loop.
type PlayOptions struct {
	Volume float64 // 0.0-1.0, default 1.0
	Rate   float64 // playback speed multiplier, default 1.0
	Loop   bool
}

// normalize fills in defaults for zero-valued fields.
func (o PlayOptions) normalize() PlayOptions {
	if o.Volume <= 0 {
		o.Volume = 1.0
	}
	if o.Rate <= 0 {
		o.Rate = 1.0
	}
	return o
}

// Manager is the playback front end: it owns the sound bank, the loader
// and the signal path from per-call gain through the shared master volume
// to the speaker. Construct one per process and pass it where needed.
type Manager struct {
	mu     sync.Mutex
	cfg    *Config
	bank   *bank.Bank
	loader *loader.Loader
	out    output

	mixer  *beep.Mixer
	master *effects.Volume
	volume float64 // linear master volume, always in [0, 1]

	music *Playback // at most one background track

	initialized bool
	silent      bool // no audio device; everything degrades to no-ops
	muted       bool
}

// New creates a manager. A nil config gets the defaults.
func New(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	b := bank.New(beep.SampleRate(cfg.SampleRate))
	mixer := &beep.Mixer{}
	m := &Manager{
		cfg:    cfg,
		bank:   b,
		loader: loader.New(b, nil),
		out:    speakerOutput{},
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2},
		muted:  !cfg.Enabled,
	}
	m.applyVolume(clamp(cfg.MasterVolume))
	return m
}

// Init acquires the audio device. Idempotent. A missing or failing device
// is not an error: the manager degrades to silent mode and every playback
// call becomes a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	rate := beep.SampleRate(m.cfg.SampleRate)
	if err := m.out.init(rate, rate.N(m.cfg.BufferDuration)); err != nil {
		log.Printf("audio device unavailable, running silent: %v", err)
		m.silent = true
		m.initialized = true
		return nil
	}

	m.out.play(m.master)
	m.initialized = true
	return nil
}

// Close stops all playback and releases the music slot. The manager can be
// re-initialized afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	m.stopMusicLocked()
	m.out.lock()
	m.mixer.Clear()
	m.out.unlock()
	if !m.silent {
		m.out.clear()
	}
	m.initialized = false
	m.silent = false
}

// LoadSound fetches and registers one sound. On failure the name is bound
// to a synthesized fallback tone; the return value reports whether the
// real asset was decoded. Safe to call before Init.
func (m *Manager) LoadSound(ctx context.Context, name, locator string) bool {
	return m.loader.Load(ctx, name, locator)
}

// PreloadProfile batch-loads the fixed asset table for a game profile,
// falling back to the default profile for unknown keys. All loads settle
// before it returns. Returns the number of assets actually decoded.
func (m *Manager) PreloadProfile(ctx context.Context, key string) int {
	return m.loader.LoadAll(ctx, profile.Sounds(key))
}

// Play renders a registered sound once (or looped). Returns the live
// playback instance, or nil when nothing was started: manager not
// initialized, silent mode, muted, or name not registered. Never errors.
func (m *Manager) Play(name string, opts ...PlayOptions) *Playback {
	m.mu.Lock()
	defer m.mu.Unlock()

	var opt PlayOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	return m.playLocked(name, opt.normalize())
}

// PlayMusic starts a background track: loop forced on, volume defaulting to
// the configured music volume. The previous background track, if any, is
// stopped first; at most one runs at a time.
func (m *Manager) PlayMusic(name string, opts ...PlayOptions) *Playback {
	m.mu.Lock()
	defer m.mu.Unlock()

	var opt PlayOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Volume <= 0 {
		opt.Volume = m.cfg.MusicVolume
	}
	opt.Loop = true

	m.stopMusicLocked()
	p := m.playLocked(name, opt.normalize())
	m.music = p
	return p
}

// StopMusic halts the current background track. Idempotent; a no-op when
// nothing is playing.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
}

func (m *Manager) stopMusicLocked() {
	if m.music != nil {
		m.music.Stop()
		m.music = nil
	}
}

// SetVolume sets the master volume, clamped to [0, 1]. Takes effect
// immediately for everything currently playing, since all instances share
// the master stage.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyVolume(clamp(v))
}

// Volume returns the current master volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetMuted sets the mute flag and returns the resulting state. Muting also
// stops background music; unmuting does not resume it.
func (m *Manager) SetMuted(muted bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = muted
	if muted {
		m.stopMusicLocked()
	}
	return m.muted
}

// ToggleMute flips the mute flag and returns the resulting state.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = !m.muted
	if m.muted {
		m.stopMusicLocked()
	}
	return m.muted
}

// IsMuted returns the current mute state.
func (m *Manager) IsMuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// CreateSimpleSound synthesizes and registers a built-in stinger, returning
// the name it is registered under. Re-creating a stinger replaces the
// previous entry.
func (m *Manager) CreateSimpleSound(t tone.SimpleType) string {
	name := t.Name()
	samples := tone.Simple(t, m.cfg.SampleRate)
	m.bank.Set(name, tone.Buffer(samples, beep.SampleRate(m.cfg.SampleRate)))
	return name
}

// PlaySimple synthesizes, registers and plays a built-in stinger.
func (m *Manager) PlaySimple(t tone.SimpleType) *Playback {
	return m.Play(m.CreateSimpleSound(t))
}

// Bank exposes the underlying sound bank.
func (m *Manager) Bank() *bank.Bank {
	return m.bank
}

// playLocked checks preconditions and starts a playback instance.
// Callers hold m.mu.
func (m *Manager) playLocked(name string, opt PlayOptions) *Playback {
	if !m.initialized || m.silent || m.muted {
		return nil
	}

	buf, ok := m.bank.Get(name)
	if !ok {
		log.Printf("sound %q not registered, nothing to play", name)
		return nil
	}
	return m.startInstance(buf, opt)
}

// startInstance builds the per-call signal path and inserts it into the
// shared mixer. The path is fully wired before the mixer sees it, so no
// frames are dropped at the start.
func (m *Manager) startInstance(buf *beep.Buffer, opt PlayOptions) *Playback {
	p := &Playback{}

	src := buf.Streamer(0, buf.Len())
	var s beep.Streamer = src
	if opt.Loop {
		s = beep.Loop(-1, src)
	}
	if opt.Rate != 1.0 {
		s = beep.ResampleRatio(resampleQuality, opt.Rate, s)
	}
	s = newVolume(s, opt.Volume)
	s = beep.Seq(s, beep.Callback(p.ended))

	p.start()
	m.out.lock()
	m.mixer.Add(&instanceStreamer{s: s, p: p})
	m.out.unlock()
	return p
}

// applyVolume updates the shared master stage. Callers hold m.mu.
func (m *Manager) applyVolume(v float64) {
	m.volume = v
	m.out.lock()
	if v <= 0 {
		m.master.Silent = true
	} else {
		m.master.Silent = false
		m.master.Volume = math.Log2(v)
	}
	m.out.unlock()
}

// newVolume wraps a streamer in a linear-volume stage.
// math.Log2(0) is -Inf, so zero volume uses the Silent flag instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
