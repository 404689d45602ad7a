package tone

import "github.com/gopxl/beep"

// monoStreamer streams a mono sample slice into both channels.
type monoStreamer struct {
	samples []float64
	pos     int
}

// Streamer wraps mono samples as a beep.Streamer. The same sample feeds
// both channels.
func Streamer(samples []float64) beep.Streamer {
	return &monoStreamer{samples: samples}
}

func (m *monoStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}
	for i := range samples {
		if m.pos >= len(m.samples) {
			return i, true
		}
		v := m.samples[m.pos]
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *monoStreamer) Err() error { return nil }

// Buffer renders mono samples into a beep.Buffer at the given rate,
// ready for registry insertion.
func Buffer(samples []float64, rate beep.SampleRate) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{
		SampleRate:  rate,
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(Streamer(samples))
	return buf
}
