package mini

import (
	"reflect"
	"testing"

	"github.com/weft-audio/weft/pattern"
	"github.com/weft-audio/weft/rat"
)

func cycle(t *testing.T, c int64) pattern.Arc {
	t.Helper()
	return pattern.Arc{Start: rat.FromInt(c), End: rat.FromInt(c + 1)}
}

func mustParse(t *testing.T, input string) pattern.Pattern {
	t.Helper()
	p, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return p
}

func values(events []pattern.Event) []pattern.Value {
	var vs []pattern.Value
	for _, ev := range events {
		vs = append(vs, ev.Value)
	}
	return vs
}

func TestParseSequence(t *testing.T) {
	p := mustParse(t, "0 3 5 7")
	events := p.Query(cycle(t, 0))

	if len(events) != 4 {
		t.Fatalf("want 4 events, got %d: %+v", len(events), events)
	}
	want := []pattern.Value{pattern.Int(0), pattern.Int(3), pattern.Int(5), pattern.Int(7)}
	if got := values(events); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong values:\nwant: %v\ngot:  %v", want, got)
	}
	quarter, err := rat.New(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, ev := range events {
		if !ev.Onset() {
			t.Errorf("event %d: expected onset", i)
		}
		if !ev.Part.Width().Equal(quarter) {
			t.Errorf("event %d: want 1/4 width, got %v", i, ev.Part.Width())
		}
		wantStart := quarter.Mul(rat.FromInt(int64(i)))
		if !ev.Part.Start.Equal(wantStart) {
			t.Errorf("event %d: want start %v, got %v", i, wantStart, ev.Part.Start)
		}
	}
}

func TestParseSingleElement(t *testing.T) {
	p := mustParse(t, "7")
	events := p.Query(cycle(t, 0))
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %+v", events)
	}
	if !events[0].Part.Width().Equal(rat.FromInt(1)) {
		t.Errorf("single element should fill the cycle, got %v", events[0].Part)
	}
}

func TestParseAlternation(t *testing.T) {
	p := mustParse(t, "<0 1>")
	want := []pattern.Value{pattern.Int(0), pattern.Int(1), pattern.Int(0), pattern.Int(1)}
	for c := int64(0); c < 4; c++ {
		events := p.Query(cycle(t, c))
		if len(events) != 1 {
			t.Fatalf("cycle %d: want 1 event, got %+v", c, events)
		}
		if events[0].Value != want[c] {
			t.Errorf("cycle %d: want %v, got %v", c, want[c], events[0].Value)
		}
	}
}

func TestParseGroupModifier(t *testing.T) {
	// the modifier applies to the whole group
	p := mustParse(t, "[0 1]*2")
	events := p.Query(cycle(t, 0))

	want := []pattern.Value{pattern.Int(0), pattern.Int(1), pattern.Int(0), pattern.Int(1)}
	if got := values(events); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong values:\nwant: %v\ngot:  %v", want, got)
	}
	quarter, err := rat.New(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, ev := range events {
		if !ev.Part.Width().Equal(quarter) {
			t.Errorf("event %d: want 1/4 width, got %v", i, ev.Part.Width())
		}
	}
}

func TestParseSlow(t *testing.T) {
	// "0/2" stretches over two cycles: the onset lands in the first
	p := mustParse(t, "0/2")
	first := p.Query(cycle(t, 0))
	if len(first) != 1 || !first[0].Onset() {
		t.Fatalf("cycle 0: want one onset event, got %+v", first)
	}
	second := p.Query(cycle(t, 1))
	if len(second) != 1 || second[0].Onset() {
		t.Fatalf("cycle 1: want one continuation event, got %+v", second)
	}
}

func TestParseRests(t *testing.T) {
	p := mustParse(t, "0 ~ 3 -")
	events := p.Query(cycle(t, 0))
	want := []pattern.Value{pattern.Int(0), pattern.Rest{}, pattern.Int(3), pattern.Rest{}}
	if got := values(events); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong values:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestParseNumericKinds(t *testing.T) {
	p := mustParse(t, "60 0.5")
	events := p.Query(cycle(t, 0))
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %+v", events)
	}
	if _, ok := events[0].Value.(pattern.Int); !ok {
		t.Errorf("integer literal lost its kind: %T", events[0].Value)
	}
	if f, ok := events[1].Value.(pattern.Float); !ok || f != 0.5 {
		t.Errorf("decimal literal lost its kind: %#v", events[1].Value)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		p := mustParse(t, input)
		if events := p.Query(cycle(t, 0)); events != nil {
			t.Errorf("Parse(%q): want silence, got %+v", input, events)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"[", "[0 3", "<0 1", "<>", "[<0 1]"} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q): expected error", input)
			continue
		}
		if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("Parse(%q): want *SyntaxError, got %T: %v", input, err, err)
		}
	}
}

func TestParseRecovery(t *testing.T) {
	// a stray token is dropped, the rest of the pattern still plays
	p := mustParse(t, "0 ? 3")
	events := p.Query(cycle(t, 0))
	want := []pattern.Value{pattern.Int(0), pattern.Int(3)}
	if got := values(events); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong values:\nwant: %v\ngot:  %v", want, got)
	}

	// dividing by zero silences only that element
	p = mustParse(t, "0/0 3")
	events = p.Query(cycle(t, 0))
	want = []pattern.Value{pattern.Int(3)}
	if got := values(events); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong values:\nwant: %v\ngot:  %v", want, got)
	}
}

func TestParseDeterministic(t *testing.T) {
	const input = "<0 [3 5]>*2 ~ 7"
	a := mustParse(t, input)
	b := mustParse(t, input)
	for c := int64(0); c < 4; c++ {
		if want, got := a.Query(cycle(t, c)), b.Query(cycle(t, c)); !reflect.DeepEqual(want, got) {
			t.Errorf("cycle %d: parses disagree:\nfirst:  %+v\nsecond: %+v", c, want, got)
		}
	}
}
