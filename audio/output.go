package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// output abstracts the speaker backend so the manager can be constructed
// with a fake sink in tests and on machines without an audio device.
type output interface {
	init(rate beep.SampleRate, bufferSize int) error
	play(s beep.Streamer)
	lock()
	unlock()
	clear()
}

// speakerOutput routes through the beep speaker (oto underneath).
type speakerOutput struct{}

func (speakerOutput) init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) lock()                { speaker.Lock() }
func (speakerOutput) unlock()              { speaker.Unlock() }
func (speakerOutput) clear()               { speaker.Clear() }
