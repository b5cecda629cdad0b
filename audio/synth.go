package audio

import "math"

const maxVoices = 12

// release tail appended after a note's duration so it doesn't click
const releaseSamples = 256

type voice struct {
	active bool
	delay  int // samples until the voice starts sounding
	phase  float64
	step   float64 // phase increment per sample
	pos    int
	length int // sounding length in samples, including the release tail
	vel    float64
}

func (v *voice) render(buf []float64) {
	n := 0
	if v.delay > 0 {
		n = v.delay
		if n > len(buf) {
			v.delay -= len(buf)
			return
		}
		v.delay = 0
	}
	for i := n; i < len(buf); i++ {
		buf[i] += math.Sin(v.phase) * v.vel * envelope(v.pos, v.length)
		v.phase += v.step
		v.pos++
		if v.pos >= v.length {
			v.active = false
			return
		}
	}
}

// envelope is a short linear attack followed by a linear fade over the
// release tail. Everything in between sustains at full level.
func envelope(pos, length int) float64 {
	const attack = 64
	if pos < attack {
		return float64(pos) / attack
	}
	if rem := length - pos; rem < releaseSamples {
		return float64(rem) / releaseSamples
	}
	return 1
}

// synth is a fixed pool of sine voices. When the pool is exhausted the note
// is dropped.
type synth struct {
	voices [maxVoices]voice
}

func (s *synth) trigger(pitch int, vel float64, durSamples, offset int) {
	for i := range s.voices {
		if s.voices[i].active {
			continue
		}
		s.voices[i] = voice{
			active: true,
			delay:  offset,
			step:   2 * math.Pi * pitchFreq(pitch) / sampleRate,
			length: durSamples + releaseSamples,
			vel:    vel * 0.25, // headroom for overlapping voices
		}
		return
	}
}

func (s *synth) render(buf []float64) {
	for i := range s.voices {
		if s.voices[i].active {
			s.voices[i].render(buf)
		}
	}
}

func pitchFreq(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}
