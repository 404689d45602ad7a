package tone

import (
	"math"
	"strings"
	"time"
)

// Amplitude is the fixed peak level for synthesized tones. Kept below
// unity so several fallback tones can mix without clipping.
const Amplitude = 0.3

// DefaultDecay is the exponential decay rate (per second) for fallback tones.
const DefaultDecay = 6.0

// DefaultDuration is how long a fallback tone rings.
const DefaultDuration = 300 * time.Millisecond

// Category classifies a sound name into a pitch class. Resolution happens
// once, when a fallback is synthesized, not on every playback.
type Category int

const (
	CategoryDefault Category = iota
	CategoryClick
	CategoryScore
	CategoryJump
	CategoryExplosion
	CategoryError
	CategorySuccess
)

// categoryFreqs binds each category to its tone frequency in Hz.
var categoryFreqs = [...]float64{
	CategoryDefault:   440.0,  // A4
	CategoryClick:     1000.0,
	CategoryScore:     1318.51, // E6
	CategoryJump:      659.25,  // E5
	CategoryExplosion: 110.0,   // A2
	CategoryError:     220.0,   // A3
	CategorySuccess:   880.0,   // A5
}

// categoryNeedles maps name substrings to categories. First match wins,
// so more specific needles come first.
var categoryNeedles = []struct {
	needle string
	cat    Category
}{
	{"click", CategoryClick},
	{"select", CategoryClick},
	{"score", CategoryScore},
	{"collect", CategoryScore},
	{"coin", CategoryScore},
	{"jump", CategoryJump},
	{"explo", CategoryExplosion},
	{"crash", CategoryExplosion},
	{"hit", CategoryExplosion},
	{"error", CategoryError},
	{"fail", CategoryError},
	{"lose", CategoryError},
	{"success", CategorySuccess},
	{"win", CategorySuccess},
}

// Frequency returns the tone frequency for the category in Hz.
func (c Category) Frequency() float64 {
	if c < 0 || int(c) >= len(categoryFreqs) {
		return categoryFreqs[CategoryDefault]
	}
	return categoryFreqs[c]
}

// CategoryOf resolves a sound name to a pitch category by substring match.
// Unmatched names get CategoryDefault.
func CategoryOf(name string) Category {
	lower := strings.ToLower(name)
	for _, cn := range categoryNeedles {
		if strings.Contains(lower, cn.needle) {
			return cn.cat
		}
	}
	return CategoryDefault
}

// Synthesize renders a decaying sine tone as mono samples at unity channel
// count. Sample i is sin(2π·freq·i/rate) · exp(-decay·i/rate) · Amplitude.
// The result has exactly int(duration.Seconds()*rate) samples.
// Pure and deterministic: no I/O, no failure mode.
func Synthesize(freq float64, duration time.Duration, decay float64, rate int) []float64 {
	n := int(duration.Seconds() * float64(rate))
	if n < 0 {
		n = 0
	}
	buf := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		buf[i] = math.Sin(2*math.Pi*freq*t) * math.Exp(-decay*t) * Amplitude
	}
	return buf
}

// Fallback renders the substitute tone for a sound name whose asset could
// not be loaded, pitched by the name's category.
func Fallback(name string, rate int) []float64 {
	return Synthesize(CategoryOf(name).Frequency(), DefaultDuration, DefaultDecay, rate)
}
