// Package sched bridges a host's discrete tick counter to the continuous
// rational-time pattern model. Once per host tick it queries each playing
// pattern over a one-tick-wide arc and forwards every onset to a note sink
// exactly once: re-querying the same tick yields the same arc and therefore
// the same onsets.
package sched

import (
	"math"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/weft-audio/weft/pattern"
	"github.com/weft-audio/weft/rat"
)

// DefaultCycleBeats is the cycle width used when a player's Cycle parameter
// is unset or does not resolve to a number.
const DefaultCycleBeats = 4.0

// Note is a single trigger request.
type Note struct {
	Pitch    int       // MIDI note number, clamped to 0..127
	Velocity float64   // normalized 0..1
	Duration int       // in ticks
	Voice    uuid.UUID // correlates the note to a parent voice, uuid.Nil if none
}

// Sink receives trigger requests. The scheduler calls Trigger once per onset.
type Sink interface {
	Trigger(Note)
}

// Valuer is a value-bearing handle, typically a live control.
type Valuer interface {
	Value() float64
}

// Resolve turns a dynamic parameter into a number: numeric kinds are used
// as-is, a callable is invoked, a Valuer is read, and anything else falls
// back. A transient read failure must not interrupt a running transport, so
// there is no error path here.
func Resolve(v interface{}, fallback float64) float64 {
	switch x := v.(type) {
	case nil:
		return fallback
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case func() float64:
		return x()
	case Valuer:
		return x.Value()
	default:
		return fallback
	}
}

// Player binds a pattern to a playback cursor and its per-pattern parameters.
// Root, Cycle and Velocity accept anything Resolve accepts and are read once
// per tick, so live controls can be wired in directly.
type Player struct {
	Pattern  pattern.Pattern
	Root     interface{} // base pitch the pattern values offset, default 60
	Cycle    interface{} // cycle width in beats, default DefaultCycleBeats
	Velocity interface{} // 0..127, default 100
	Voice    uuid.UUID   // optional parent-voice correlation

	running   bool
	startTick int
}

// Start anchors the player at tick and begins playback.
func (p *Player) Start(tick int) {
	p.running = true
	p.startTick = tick
}

// Stop halts playback from the next scheduling pass on. Stopping an already
// stopped player is a no-op.
func (p *Player) Stop() {
	p.running = false
}

// Reset re-anchors the player at tick without changing its run state.
func (p *Player) Reset(tick int) {
	p.startTick = tick
}

func (p *Player) Running() bool {
	return p.running
}

// Scheduler owns the registered players and updates them in registration
// order on every tick. Players are addressed by opaque handles rather than
// their identity, so a handle can never accidentally outlive one player and
// resolve to another.
type Scheduler struct {
	ppq     int
	sink    Sink
	order   []uuid.UUID
	players map[uuid.UUID]*Player
}

// New creates a scheduler. ppq is the host's ticks-per-quarter-note and must
// be positive.
func New(ppq int, sink Sink) *Scheduler {
	return &Scheduler{
		ppq:     ppq,
		sink:    sink,
		players: make(map[uuid.UUID]*Player),
	}
}

func (s *Scheduler) Add(p *Player) uuid.UUID {
	h := uuid.New()
	s.players[h] = p
	s.order = append(s.order, h)
	return h
}

func (s *Scheduler) Remove(h uuid.UUID) {
	if _, ok := s.players[h]; !ok {
		return
	}
	delete(s.players, h)
	if i := slices.Index(s.order, h); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Scheduler) Get(h uuid.UUID) *Player {
	return s.players[h]
}

// Tick schedules all players for the given host tick. Ticks are expected to
// be monotonically non-decreasing; calling Tick twice with the same value
// triggers the same onsets twice, which callers rely on for idempotence
// checks but should avoid live.
func (s *Scheduler) Tick(now int) {
	for _, h := range s.order {
		s.tickPlayer(now, s.players[h])
	}
}

func (s *Scheduler) tickPlayer(now int, p *Player) {
	if !p.running {
		return
	}
	rel := now - p.startTick
	if rel < 0 {
		return
	}

	// snapshot all dynamic parameters before querying, so every event of
	// this tick sees consistent values
	cycleBeats := Resolve(p.Cycle, DefaultCycleBeats)
	root := Resolve(p.Root, 60)
	velocity := clamp(Resolve(p.Velocity, 100), 0, 127) / 127

	if cycleBeats <= 0 || s.ppq <= 0 {
		// a live control swept through zero; nothing fits in a
		// zero-width cycle
		return
	}
	ticksPerCycle := rat.FromFloat(cycleBeats).Mul(rat.FromInt(int64(s.ppq)))
	start, err := rat.FromInt(int64(rel)).Div(ticksPerCycle)
	if err != nil {
		return
	}
	end, err := rat.FromInt(int64(rel) + 1).Div(ticksPerCycle)
	if err != nil {
		return
	}

	for _, ev := range p.Pattern.Query(pattern.Arc{Start: start, End: end}) {
		if !ev.Onset() {
			continue
		}
		var offset float64
		switch v := ev.Value.(type) {
		case pattern.Int:
			offset = float64(v)
		case pattern.Float:
			offset = float64(v)
		default: // rest
			continue
		}

		beats := 1.0
		if ev.Whole != nil {
			beats = ev.Whole.Width().Float64() * cycleBeats
		}
		duration := int(math.Round(beats * float64(s.ppq)))
		if duration < 1 {
			duration = 1
		}

		s.sink.Trigger(Note{
			Pitch:    clampInt(int(math.Round(root+offset)), 0, 127),
			Velocity: velocity,
			Duration: duration,
			Voice:    p.Voice,
		})
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
