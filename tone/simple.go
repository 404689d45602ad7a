package tone

import "time"

// SimpleType enumerates the built-in UI stingers.
type SimpleType int

const (
	SimpleBeep SimpleType = iota
	SimpleClick
	SimpleError
	SimpleSuccess
)

// SimpleSpec is the fixed recipe for a stinger.
type SimpleSpec struct {
	Frequency float64
	Duration  time.Duration
}

var simpleSpecs = [...]SimpleSpec{
	SimpleBeep:    {Frequency: 440.0, Duration: 200 * time.Millisecond},
	SimpleClick:   {Frequency: 1000.0, Duration: 80 * time.Millisecond},
	SimpleError:   {Frequency: 220.0, Duration: 250 * time.Millisecond},
	SimpleSuccess: {Frequency: 880.0, Duration: 300 * time.Millisecond},
}

var simpleNames = [...]string{
	SimpleBeep:    "simple-beep",
	SimpleClick:   "simple-click",
	SimpleError:   "simple-error",
	SimpleSuccess: "simple-success",
}

// Spec returns the frequency/duration pair for the stinger type.
// Unknown types get the beep spec.
func (t SimpleType) Spec() SimpleSpec {
	if t < 0 || int(t) >= len(simpleSpecs) {
		return simpleSpecs[SimpleBeep]
	}
	return simpleSpecs[t]
}

// Name returns the registry name the stinger is stored under.
func (t SimpleType) Name() string {
	if t < 0 || int(t) >= len(simpleNames) {
		return simpleNames[SimpleBeep]
	}
	return simpleNames[t]
}

// Simple renders the stinger for the given type.
func Simple(t SimpleType, rate int) []float64 {
	spec := t.Spec()
	return Synthesize(spec.Frequency, spec.Duration, DefaultDecay, rate)
}
