package audio

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultSampleRate is the rate all bank buffers and synthesized
	// tones are rendered at.
	DefaultSampleRate = 44100

	// DefaultBufferDuration sizes the speaker buffer. Larger is safer on
	// slow machines, smaller cuts latency.
	DefaultBufferDuration = 100 * time.Millisecond

	// DefaultMusicVolume is the per-call volume PlayMusic uses when the
	// caller does not override it.
	DefaultMusicVolume = 0.5
)

// Config holds manager settings.
type Config struct {
	SampleRate     int
	BufferDuration time.Duration
	MasterVolume   float64 // 0.0-1.0
	MusicVolume    float64 // 0.0-1.0, PlayMusic default
	Enabled        bool    // false starts the manager muted
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:     DefaultSampleRate,
		BufferDuration: DefaultBufferDuration,
		MasterVolume:   1.0,
		MusicVolume:    DefaultMusicVolume,
		Enabled:        true,
	}
}

// LoadConfig loads configuration from environment variables, starting from
// the defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("SOUNDBANK_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volumes are 0-100 in the environment, converted to 0.0-1.0
	if volume := os.Getenv("SOUNDBANK_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp(float64(val) / 100.0)
		}
	}

	if volume := os.Getenv("SOUNDBANK_MUSIC_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MusicVolume = clamp(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("SOUNDBANK_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

// clamp pins a volume to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
