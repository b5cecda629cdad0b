package audio

const (
	sampleRate = 44100
	bufferSize = 256
)

// clock keeps track of the number of samples seen since the audio stream
// started and maps them onto scheduler ticks.
type clock struct {
	sampleRate float64

	samples  uint64 // total time passed in number of samples
	nextTick uint64 // time of the next tick in number of samples
	tick     int
}

// advance visits every tick falling within the next numSamples samples,
// passing the tick number and its sample offset in the current buffer.
func (c *clock) advance(numSamples int, bpm float64, ppq int, f func(tick, offset int)) {
	ticksPerSec := (bpm / 60.0) * float64(ppq)
	tickDuration := uint64(c.sampleRate / ticksPerSec)
	if tickDuration == 0 {
		tickDuration = 1
	}
	if c.nextTick < c.samples {
		// the tempo went up mid-buffer; pull the next tick forward
		c.nextTick = c.samples
	}

	end := c.samples + uint64(numSamples)
	for c.nextTick < end {
		f(c.tick, int(c.nextTick-c.samples))
		c.tick++
		c.nextTick += tickDuration
	}
	c.samples = end
}

func samplesPerTick(bpm float64, ppq int) float64 {
	return sampleRate * 60.0 / (bpm * float64(ppq))
}
