package audio

import (
	"io"
	"math"

	wav "github.com/youpy/go-wav"

	"github.com/weft-audio/weft/sched"
)

// Render synthesizes collected notes into a mono buffer covering ticks
// scheduler ticks plus the release tail of the last note. It uses the same
// sine-and-envelope voice as the live engine, one additive pass per note.
func Render(notes []sched.TimedNote, bpm float64, ppq, ticks int) []float64 {
	spt := samplesPerTick(bpm, ppq)
	buf := make([]float64, int(math.Ceil(float64(ticks)*spt))+releaseSamples)

	for _, n := range notes {
		start := int(math.Round(float64(n.Tick) * spt))
		length := int(math.Round(float64(n.Note.Duration)*spt)) + releaseSamples
		step := 2 * math.Pi * pitchFreq(n.Note.Pitch) / sampleRate
		vel := n.Note.Velocity * 0.25

		var phase float64
		for pos := 0; pos < length && start+pos < len(buf); pos++ {
			buf[start+pos] += math.Sin(phase) * vel * envelope(pos, length)
			phase += step
		}
	}
	return buf
}

// WriteWAV writes buf as 16-bit mono PCM.
func WriteWAV(w io.Writer, buf []float64) error {
	const scale = 1<<15 - 1

	writer := wav.NewWriter(w, uint32(len(buf)), 1, sampleRate, 16)
	samples := make([]wav.Sample, len(buf))
	for i, v := range buf {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		samples[i].Values[0] = int(v * scale)
	}
	return writer.WriteSamples(samples)
}
