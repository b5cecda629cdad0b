package mini

import "testing"

func TestLexer(t *testing.T) {
	type test struct {
		input  string
		expect []token
	}
	tests := []test{
		{
			input: "0 3 5 7",
			expect: []token{
				{typ: typeInt, text: "0"},
				{typ: typeInt, text: "3"},
				{typ: typeInt, text: "5"},
				{typ: typeInt, text: "7"},
				{typ: typeEOF},
			},
		},
		{
			input: "[0 1]*2",
			expect: []token{
				{typ: typeLeftBracket, text: "["},
				{typ: typeInt, text: "0"},
				{typ: typeInt, text: "1"},
				{typ: typeRightBracket, text: "]"},
				{typ: typeStar, text: "*"},
				{typ: typeInt, text: "2"},
				{typ: typeEOF},
			},
		},
		{
			input: "<0 12>/2",
			expect: []token{
				{typ: typeLeftAngle, text: "<"},
				{typ: typeInt, text: "0"},
				{typ: typeInt, text: "12"},
				{typ: typeRightAngle, text: ">"},
				{typ: typeSlash, text: "/"},
				{typ: typeInt, text: "2"},
				{typ: typeEOF},
			},
		},
		{
			input: "~ - 0",
			expect: []token{
				{typ: typeRest, text: "~"},
				{typ: typeRest, text: "-"},
				{typ: typeInt, text: "0"},
				{typ: typeEOF},
			},
		},
		{
			// a number wins over the rest reading of '-'
			input: "-3 -.5",
			expect: []token{
				{typ: typeInt, text: "-3"},
				{typ: typeFloat, text: "-.5"},
				{typ: typeEOF},
			},
		},
		{
			input: "0.25 7.5",
			expect: []token{
				{typ: typeFloat, text: "0.25"},
				{typ: typeFloat, text: "7.5"},
				{typ: typeEOF},
			},
		},
		{
			input: "0 ? 3",
			expect: []token{
				{typ: typeInt, text: "0"},
				{typ: typeBad, text: "?"},
				{typ: typeInt, text: "3"},
				{typ: typeEOF},
			},
		},
		{
			// a dash with only a dangling dot behind it is a rest, and
			// the dot stays a separate stray token even at end of input
			input: "-.",
			expect: []token{
				{typ: typeRest, text: "-"},
				{typ: typeBad, text: "."},
				{typ: typeEOF},
			},
		},
		{
			input: "",
			expect: []token{
				{typ: typeEOF},
			},
		},
		{
			input: "  \t ",
			expect: []token{
				{typ: typeEOF},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		tokens := lex(test.input)
		if len(tokens) != len(test.expect) {
			t.Fatalf("token mismatch: \nwant: %+v, \ngot:  %+v", test.expect, tokens)
		}
		for i, got := range tokens {
			want := test.expect[i]
			if want.typ != got.typ {
				t.Errorf("wrong type: want %+v, got %+v", want, got)
			}
			if want.text != got.text {
				t.Errorf("wrong text: want %+v, got %+v", want, got)
			}
		}
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := lex("0 [3")
	wantPos := []int{0, 2, 3, 4}
	if len(tokens) != len(wantPos) {
		t.Fatalf("want %d tokens, got %+v", len(wantPos), tokens)
	}
	for i, tok := range tokens {
		if tok.pos != wantPos[i] {
			t.Errorf("token %d: pos = %d, want %d", i, tok.pos, wantPos[i])
		}
	}
}
