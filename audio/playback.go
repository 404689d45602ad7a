package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// Playback instance states. Ended and stopped are terminal; there is no
// transition back.
const (
	stateCreated int32 = iota
	statePlaying
	stateEnded
	stateStopped
)

// Playback is one live rendering of a sound through the output path. It is
// created by a play call and becomes inert once the sound finishes or is
// stopped; the mixer drops its signal path at that point.
type Playback struct {
	state atomic.Int32
}

// Playing reports whether the instance is still rendering.
func (p *Playback) Playing() bool {
	return p.state.Load() == statePlaying
}

// Done reports whether the instance reached a terminal state.
func (p *Playback) Done() bool {
	s := p.state.Load()
	return s == stateEnded || s == stateStopped
}

// Stopped reports whether the instance was halted before its natural end.
func (p *Playback) Stopped() bool {
	return p.state.Load() == stateStopped
}

// Stop halts the instance. Immediate and idempotent; stopping an already
// finished instance is a no-op.
func (p *Playback) Stop() {
	p.state.CompareAndSwap(statePlaying, stateStopped)
}

// start marks the instance live. Called once, just before mixer insertion.
func (p *Playback) start() {
	p.state.CompareAndSwap(stateCreated, statePlaying)
}

// ended marks natural completion. Wired as the beep.Callback at the tail of
// the instance's signal path, so it never fires for looped sounds.
func (p *Playback) ended() {
	p.state.CompareAndSwap(statePlaying, stateEnded)
}

// instanceStreamer gates an instance's signal path on its state. Once the
// instance leaves statePlaying the streamer reports drained and the mixer
// releases the whole path.
type instanceStreamer struct {
	s beep.Streamer
	p *Playback
}

func (is *instanceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if is.p.state.Load() != statePlaying {
		return 0, false
	}
	return is.s.Stream(samples)
}

func (is *instanceStreamer) Err() error { return nil }
