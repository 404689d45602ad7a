// Package bank holds decoded and synthesized sound buffers by name.
package bank

import (
	"sync"

	"github.com/gopxl/beep"
)

// Bank maps sound names to immutable playback buffers. Writes are atomic
// replacements; last write wins. Buffers are shared read-only by every
// playback instance derived from them.
type Bank struct {
	mu     sync.RWMutex
	rate   beep.SampleRate
	sounds map[string]*beep.Buffer
}

// New creates an empty bank whose buffers are sampled at rate.
func New(rate beep.SampleRate) *Bank {
	return &Bank{
		rate:   rate,
		sounds: make(map[string]*beep.Buffer),
	}
}

// SampleRate returns the rate all stored buffers use.
func (b *Bank) SampleRate() beep.SampleRate {
	return b.rate
}

// Set binds name to buf, replacing any previous binding.
func (b *Bank) Set(name string, buf *beep.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sounds[name] = buf
}

// Get retrieves the buffer bound to name.
func (b *Bank) Get(name string) (*beep.Buffer, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	buf, ok := b.sounds[name]
	return buf, ok
}

// Has reports whether name is bound.
func (b *Bank) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.sounds[name]
	return ok
}

// Names returns all bound sound names.
func (b *Bank) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.sounds))
	for name := range b.sounds {
		names = append(names, name)
	}
	return names
}

// Len returns the number of bound sounds.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sounds)
}
