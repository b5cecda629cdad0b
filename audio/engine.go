// Package audio is a self-contained demo sink for the pattern scheduler: a
// sample clock that drives Scheduler.Tick at sample-accurate offsets, a small
// sine synth that sounds the triggered notes, and live (portaudio) and
// offline (WAV) outputs. A DAW host would replace all of this with its own
// voice machinery; the package exists to prove the Sink contract end to end.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/weft-audio/weft/sched"
)

// Engine plays a scheduler live through the default audio device.
type Engine struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	clock  clock
	synth  synth
	sched  *sched.Scheduler

	bpm float64
	ppq int

	buf    []float64
	offset int // buffer offset of the tick being scheduled
}

func NewEngine(ppq int) (*Engine, error) {
	e := &Engine{
		clock: clock{sampleRate: sampleRate},
		bpm:   120,
		ppq:   ppq,
		buf:   make([]float64, bufferSize),
	}
	e.sched = sched.New(ppq, e)

	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, bufferSize, e.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	e.stream = stream
	return e, nil
}

func (e *Engine) Scheduler() *sched.Scheduler {
	return e.sched
}

func (e *Engine) Start() error {
	return e.stream.Start()
}

func (e *Engine) Close() error {
	e.stream.Close()
	return portaudio.Terminate()
}

// Update runs f with the audio callback locked out, for mutations coming
// from another goroutine such as a REPL. Changes take effect on the next
// buffer.
func (e *Engine) Update(f func()) {
	e.mu.Lock()
	f()
	e.mu.Unlock()
}

// Now returns the next tick the clock will schedule, which is where a newly
// started player should be anchored.
func (e *Engine) Now() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.tick
}

func (e *Engine) SetBPM(bpm float64) {
	if bpm <= 0 {
		return
	}
	e.Update(func() { e.bpm = bpm })
}

// Trigger implements sched.Sink. It is called synchronously from
// Scheduler.Tick inside the audio callback, so the pending tick offset is
// valid for the duration of the call.
func (e *Engine) Trigger(n sched.Note) {
	durSamples := int(math.Round(float64(n.Duration) * samplesPerTick(e.bpm, e.ppq)))
	e.synth.trigger(n.Pitch, n.Velocity, durSamples, e.offset)
}

func (e *Engine) process(out []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.buf {
		e.buf[i] = 0
	}
	e.clock.advance(bufferSize, e.bpm, e.ppq, func(tick, offset int) {
		e.offset = offset
		e.sched.Tick(tick)
	})
	e.synth.render(e.buf)

	// interleaved stereo
	for i, sample := range e.buf {
		s := float32(sample)
		out[2*i] = s
		out[2*i+1] = s
	}
}
