package mini

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	typeBad tokenType = iota
	typeInt
	typeFloat
	typeRest
	typeLeftBracket
	typeRightBracket
	typeLeftAngle
	typeRightAngle
	typeStar
	typeSlash
	typeEOF
)

const eof = -1

var simpleTokens = map[rune]tokenType{
	'[': typeLeftBracket,
	']': typeRightBracket,
	'<': typeLeftAngle,
	'>': typeRightAngle,
	'*': typeStar,
	'/': typeSlash,
	'~': typeRest,
}

type token struct {
	typ  tokenType
	pos  int
	text string
}

// lex never fails: runes that fit no rule become bad tokens, which the parser
// skips so that one stray character cannot take down a live pattern.
func lex(input string) []token {
	l := &lexer{input: input}
	return l.lex()
}

type lexer struct {
	input string

	width int
	start int
	pos   int

	tokens []token
}

func (l *lexer) lex() []token {
	for {
		switch r := l.next(); {
		case r == eof:
			l.yieldToken(typeEOF)
			return l.tokens
		case l.isNumber(r):
			// checked before the rest rule so that "-3" stays a number
			l.lexNumber()
		case r == '-':
			l.yieldToken(typeRest)
		case unicode.IsSpace(r):
			l.ignoreSpace()
		default:
			if typ, ok := simpleTokens[r]; ok {
				l.yieldToken(typ)
			} else {
				l.yieldToken(typeBad)
			}
		}
	}
}

func (l *lexer) next() rune {
	if len(l.input) == l.pos {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += l.width
	return r
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) yieldToken(t tokenType) {
	s := l.input[l.start:l.pos]
	l.tokens = append(l.tokens, token{t, l.start, s})
	l.start = l.pos
	l.width = 0
}

func (l *lexer) ignoreSpace() {
	for unicode.IsSpace(l.peek()) {
		l.next()
	}
	l.start = l.pos
}

func (l *lexer) take(set string) int {
	var n int
	for strings.IndexRune(set, l.next()) >= 0 {
		n++
	}
	l.backup()
	return n
}

func (l *lexer) accept(set string) bool {
	if strings.IndexRune(set, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

const digits = "0123456789"

// lexNumber assumes the current rune has been checked with isNumber.
func (l *lexer) lexNumber() {
	l.backup()

	l.accept("-")
	l.take(digits)
	var isFloat bool
	dot := l.pos
	if l.accept(".") {
		if l.take(digits) > 0 {
			isFloat = true
		} else {
			// "1." is an int followed by a stray dot
			l.pos = dot
			l.width = 0
		}
	}

	if isFloat {
		l.yieldToken(typeFloat)
	} else {
		l.yieldToken(typeInt)
	}
}

func (l *lexer) isNumber(r rune) bool {
	if isDigit(r) {
		return true
	}
	peek := l.peek()
	if r == '-' {
		if isDigit(peek) {
			return true
		}
		if peek == '.' {
			// look past the dot, then restore; at end of input backup
			// would under-rewind because width is zero there
			mark := l.pos
			l.next()
			ok := isDigit(l.peek())
			l.pos, l.width = mark, 1
			return ok
		}
	}
	return r == '.' && isDigit(peek)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
