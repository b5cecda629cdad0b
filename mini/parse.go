// Package mini parses the mini-notation for rhythmic patterns into pattern
// values. The grammar is small: numbers and rests sequenced by whitespace,
// grouped with [ ], alternated per cycle with < >, and sped up or slowed down
// with *N and /N modifiers.
//
// Parsing is permissive by design. Live patterns are edited mid-performance,
// so a stray token degrades its own sub-expression to silence instead of
// aborting the whole pattern. Only an unterminated group or an empty
// alternation body fail outright.
package mini

import (
	"fmt"
	"strconv"

	"github.com/weft-audio/weft/pattern"
	"github.com/weft-audio/weft/rat"
)

type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("mini: %s at position %d", e.Msg, e.Pos)
}

// Parse builds a pattern from input. The same input always yields a pattern
// with identical query results. An empty input parses to silence.
func Parse(input string) (pattern.Pattern, error) {
	p := &parser{tokens: lex(input)}
	return p.layer(typeEOF)
}

type parser struct {
	pos    int
	tokens []token
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.typ != typeEOF {
		p.pos++
	}
	return t
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

// layer parses elements until the closing token. A sequence of n elements
// divides the cycle into n equal slots; a single element is unwrapped and an
// empty layer is silence.
func (p *parser) layer(stop tokenType) (pattern.Pattern, error) {
	var elements []pattern.Pattern
	for {
		switch tok := p.peek(); tok.typ {
		case typeEOF:
			if stop != typeEOF {
				return pattern.Pattern{}, &SyntaxError{Pos: tok.pos, Msg: "unterminated group"}
			}
			return pattern.Seq(elements...), nil
		case stop:
			p.next()
			return pattern.Seq(elements...), nil
		case typeBad, typeRightBracket, typeRightAngle, typeStar, typeSlash:
			// stray token: drop it without claiming a slot
			p.next()
		default:
			el, err := p.element()
			if err != nil {
				return pattern.Pattern{}, err
			}
			elements = append(elements, el)
		}
	}
}

// element parses an atom and applies its modifiers. A malformed modifier
// degrades the element to silence but keeps consuming, so the rest of the
// layer is unaffected.
func (p *parser) element() (pattern.Pattern, error) {
	el, err := p.atom()
	if err != nil {
		return pattern.Pattern{}, err
	}
	for {
		switch tok := p.peek(); tok.typ {
		case typeStar:
			p.next()
			f, ok := p.factor()
			if !ok {
				el = pattern.Silence()
				continue
			}
			el = pattern.Fast(el, f)
		case typeSlash:
			p.next()
			f, ok := p.factor()
			if !ok {
				el = pattern.Silence()
				continue
			}
			slowed, err := pattern.Slow(el, f)
			if err != nil {
				// "/0" has no meaning; silence the element
				el = pattern.Silence()
				continue
			}
			el = slowed
		default:
			return el, nil
		}
	}
}

func (p *parser) factor() (rat.Rat, bool) {
	switch tok := p.peek(); tok.typ {
	case typeInt:
		p.next()
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return rat.Rat{}, false
		}
		return rat.FromInt(n), true
	case typeFloat:
		p.next()
		f, err := rat.Parse(tok.text)
		if err != nil {
			return rat.Rat{}, false
		}
		return f, true
	default:
		return rat.Rat{}, false
	}
}

func (p *parser) atom() (pattern.Pattern, error) {
	switch tok := p.next(); tok.typ {
	case typeInt:
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return pattern.Silence(), nil
		}
		return pattern.Pure(pattern.Int(n)), nil
	case typeFloat:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return pattern.Silence(), nil
		}
		return pattern.Pure(pattern.Float(f)), nil
	case typeRest:
		return pattern.Pure(pattern.Rest{}), nil
	case typeLeftBracket:
		// a group is a single atom at this level, so "[a b]*2" speeds
		// up the whole group
		return p.layer(typeRightBracket)
	case typeLeftAngle:
		return p.alternation(tok)
	default:
		return pattern.Silence(), nil
	}
}

// alternation parses <e1 e2 ...>, one element per cycle.
func (p *parser) alternation(open token) (pattern.Pattern, error) {
	var elements []pattern.Pattern
	for {
		switch tok := p.peek(); tok.typ {
		case typeEOF:
			return pattern.Pattern{}, &SyntaxError{Pos: tok.pos, Msg: "unterminated alternation"}
		case typeRightAngle:
			p.next()
			if len(elements) == 0 {
				return pattern.Pattern{}, &SyntaxError{Pos: open.pos, Msg: "empty alternation"}
			}
			return pattern.Alt(elements...), nil
		case typeBad, typeRightBracket, typeStar, typeSlash:
			p.next()
		default:
			el, err := p.element()
			if err != nil {
				return pattern.Pattern{}, err
			}
			elements = append(elements, el)
		}
	}
}
