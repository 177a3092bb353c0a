// Package beep plays short feedback tones around a recording: a high
// tick when capture starts, a lower one when it stops, and a double
// beep on errors.
package beep

import "math"

var disabled bool

// Disable turns all tones off (config sounds=false or -test mode).
func Disable() { disabled = true }

const (
	sampleRate = 44100

	startFreq   = 1200
	startVolume = 0.5
	startDecay  = 60

	endFreq   = 900
	endVolume = 0.5
	endDecay  = 40

	errorFreq   = 350
	errorVolume = 0.6
	errorDecay  = 30
)

// tone renders a mono sine burst with an exponential decay envelope.
func tone(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / sampleRate
		env := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * env)
	}
	return samples
}

// doubleTone is two bursts separated by a short gap of silence.
func doubleTone(freq, burstDur, gapDur, volume, decay float64) []int16 {
	burst := tone(freq, burstDur, volume, decay)
	gap := make([]int16, int(sampleRate*gapDur))
	out := make([]int16, 0, len(burst)*2+len(gap))
	out = append(out, burst...)
	out = append(out, gap...)
	out = append(out, burst...)
	return out
}
