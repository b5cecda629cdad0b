// Package pattern represents musical sequences as pure functions of time. A
// Pattern answers queries over bounded half-open time windows with the events
// whose spans intersect the window, so the same pattern can be sampled tick by
// tick by a scheduler or rendered in bulk offline.
package pattern

import (
	"fmt"

	"github.com/weft-audio/weft/rat"
)

// Arc is a half-open time interval [Start, End) in cycles.
type Arc struct {
	Start, End rat.Rat
}

// Empty reports whether the arc selects no time. Zero-width arcs are empty.
func (a Arc) Empty() bool {
	return !a.Start.Less(a.End)
}

// Sect clips a to b. The result may be empty.
func (a Arc) Sect(b Arc) Arc {
	s := a.Start
	if s.Less(b.Start) {
		s = b.Start
	}
	e := a.End
	if b.End.Less(e) {
		e = b.End
	}
	return Arc{Start: s, End: e}
}

func (a Arc) Width() rat.Rat {
	return a.End.Sub(a.Start)
}

func (a Arc) String() string {
	return fmt.Sprintf("[%v, %v)", a.Start, a.End)
}

// Value is the payload of an event: a numeric pitch offset that keeps the
// integer or decimal kind of its literal, or Rest.
type Value interface {
	isValue()
}

type Int int

type Float float64

// Rest marks a slot that occupies time but triggers nothing.
type Rest struct{}

func (Int) isValue()   {}
func (Float) isValue() {}
func (Rest) isValue()  {}

func (v Int) String() string   { return fmt.Sprintf("%d", int(v)) }
func (v Float) String() string { return fmt.Sprintf("%g", float64(v)) }
func (Rest) String() string    { return "~" }

// Event is a value placed in time. Whole is the full logical span of the
// event, independent of the query window; it is nil for fragments that have
// no anchor of their own. Part is the portion of the span that intersects the
// query window, so Part is always contained in both the window and Whole.
type Event struct {
	Value Value
	Whole *Arc
	Part  Arc
}

// Onset reports whether the query window contains the start of the event's
// logical span. A scheduler triggers an event on the tick that sees its onset
// and on no other.
func (e Event) Onset() bool {
	return e.Whole != nil && e.Whole.Start.Equal(e.Part.Start)
}

// Pattern is a pure function from a query arc to the events overlapping it.
// Patterns are immutable; combinators build new patterns without touching
// their inputs, and querying the same arc twice returns the same events.
type Pattern struct {
	query func(Arc) []Event
}

func New(query func(Arc) []Event) Pattern {
	return Pattern{query: query}
}

func (p Pattern) Query(a Arc) []Event {
	if p.query == nil || a.Empty() {
		return nil
	}
	return p.query(a)
}

// Silence returns no events for any arc.
func Silence() Pattern {
	return New(func(Arc) []Event { return nil })
}

// Pure repeats v once per cycle: cycle c contributes an event with whole
// [c, c+1) clipped to the query arc.
func Pure(v Value) Pattern {
	return New(func(a Arc) []Event {
		var events []Event
		for c := a.Start.Floor(); rat.FromInt(c).Less(a.End); c++ {
			whole := Arc{Start: rat.FromInt(c), End: rat.FromInt(c + 1)}
			part := whole.Sect(a)
			if part.Empty() {
				continue
			}
			w := whole
			events = append(events, Event{Value: v, Whole: &w, Part: part})
		}
		return events
	})
}

// Fast compresses p in time by factor, fitting that many cycles of p into
// one. A factor of zero degenerates to Silence rather than failing: factors
// are often driven from live controls and may transiently reach zero.
func Fast(p Pattern, factor rat.Rat) Pattern {
	if factor.Sign() == 0 {
		return Silence()
	}
	inv, _ := factor.Inv()
	return New(func(a Arc) []Event {
		inner := Arc{Start: a.Start.Mul(factor), End: a.End.Mul(factor)}
		events := p.Query(inner)
		out := make([]Event, 0, len(events))
		for _, ev := range events {
			ev.Part = Arc{Start: ev.Part.Start.Mul(inv), End: ev.Part.End.Mul(inv)}
			if ev.Whole != nil {
				w := Arc{Start: ev.Whole.Start.Mul(inv), End: ev.Whole.End.Mul(inv)}
				ev.Whole = &w
			}
			out = append(out, ev)
		}
		return out
	})
}

// Slow stretches p in time by factor. Unlike Fast, a zero factor is an error:
// there is no degenerate reading of an infinitely slow pattern.
func Slow(p Pattern, factor rat.Rat) (Pattern, error) {
	inv, err := factor.Inv()
	if err != nil {
		return Pattern{}, err
	}
	return Fast(p, inv), nil
}

// Seq squeezes its children into a single cycle, giving each an equal slot in
// order. Within its slot a child sees its own full local cycle: slot i of
// enclosing cycle c maps onto the child's cycle c, so nested sequences keep
// their own subdivision.
func Seq(children ...Pattern) Pattern {
	n := len(children)
	switch n {
	case 0:
		return Silence()
	case 1:
		return children[0]
	}
	nr := rat.FromInt(int64(n))
	inv, _ := nr.Inv()
	return New(func(a Arc) []Event {
		var events []Event
		for c := a.Start.Floor(); rat.FromInt(c).Less(a.End); c++ {
			cr := rat.FromInt(c)
			for i, child := range children {
				slotStart := cr.Add(rat.FromInt(int64(i)).Mul(inv))
				slot := Arc{Start: slotStart, End: slotStart.Add(inv)}
				part := slot.Sect(a)
				if part.Empty() {
					continue
				}
				// map [slotStart, slotStart+1/n) onto the child's cycle [c, c+1)
				local := Arc{
					Start: part.Start.Sub(slotStart).Mul(nr).Add(cr),
					End:   part.End.Sub(slotStart).Mul(nr).Add(cr),
				}
				for _, ev := range child.Query(local) {
					ev.Part = Arc{
						Start: fromLocal(ev.Part.Start, cr, slotStart, inv),
						End:   fromLocal(ev.Part.End, cr, slotStart, inv),
					}
					if ev.Whole != nil {
						w := Arc{
							Start: fromLocal(ev.Whole.Start, cr, slotStart, inv),
							End:   fromLocal(ev.Whole.End, cr, slotStart, inv),
						}
						ev.Whole = &w
					}
					events = append(events, ev)
				}
			}
		}
		return events
	})
}

func fromLocal(t, cycle, slotStart, inv rat.Rat) rat.Rat {
	return t.Sub(cycle).Mul(inv).Add(slotStart)
}

// Alt plays one child per cycle, round robin, chosen by the cycle number of
// the arc's start. The arc is not split at cycle boundaries, which is only
// correct for sub-cycle arcs such as the one-tick windows the scheduler
// issues; wider arcs must be split per cycle before querying.
func Alt(children ...Pattern) Pattern {
	n := len(children)
	switch n {
	case 0:
		return Silence()
	case 1:
		return children[0]
	}
	return New(func(a Arc) []Event {
		c := a.Start.Floor()
		i := int(((c % int64(n)) + int64(n)) % int64(n))
		return children[i].Query(a)
	})
}
