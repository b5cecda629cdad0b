// Package rat implements exact rational arithmetic for musical time. Cycle
// subdivisions are frequently non-power-of-two (3, 5, 7), and floating point
// would drift over a long-running transport, causing mistimed or duplicated
// onsets.
package rat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrDivisionByZero = errors.New("rat: division by zero")

// Rat is an immutable rational number. The zero value is 0/1. The fraction is
// always reduced and the denominator is always positive.
type Rat struct {
	num, den int64
}

// New returns num/den reduced, with the sign normalized onto the numerator.
func New(num, den int64) (Rat, error) {
	if den == 0 {
		return Rat{}, ErrDivisionByZero
	}
	return reduce(num, den), nil
}

func FromInt(n int64) Rat {
	return Rat{num: n, den: 1}
}

// floatDenominator is the fixed denominator used to approximate decimals.
// Converting through the exact binary representation of a float64 would
// produce denominators like 2^52, which defeats reduction against the small
// odd subdivisions musical time is made of.
const floatDenominator = 1e6

// FromFloat approximates f as a rational with a fixed large denominator.
func FromFloat(f float64) Rat {
	return reduce(int64(math.Round(f*floatDenominator)), floatDenominator)
}

// Parse reads "n/d", an integer, or a decimal literal.
func Parse(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, err := strconv.ParseInt(strings.TrimSpace(s[:i]), 10, 64)
		if err != nil {
			return Rat{}, fmt.Errorf("rat: bad numerator in %q: %w", s, err)
		}
		den, err := strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64)
		if err != nil {
			return Rat{}, fmt.Errorf("rat: bad denominator in %q: %w", s, err)
		}
		return New(num, den)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Rat{}, fmt.Errorf("rat: cannot parse %q", s)
	}
	return FromFloat(f), nil
}

func reduce(num, den int64) Rat {
	if num == 0 {
		return Rat{num: 0, den: 1}
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	return Rat{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (r Rat) Num() int64 { return r.num }

func (r Rat) Den() int64 {
	if r.den == 0 {
		return 1 // zero value
	}
	return r.den
}

func (r Rat) Add(o Rat) Rat {
	return reduce(r.num*o.Den()+o.num*r.Den(), r.Den()*o.Den())
}

func (r Rat) Sub(o Rat) Rat {
	return reduce(r.num*o.Den()-o.num*r.Den(), r.Den()*o.Den())
}

func (r Rat) Mul(o Rat) Rat {
	return reduce(r.num*o.num, r.Den()*o.Den())
}

func (r Rat) Div(o Rat) (Rat, error) {
	if o.num == 0 {
		return Rat{}, ErrDivisionByZero
	}
	return reduce(r.num*o.Den(), r.Den()*o.num), nil
}

// Inv returns 1/r.
func (r Rat) Inv() (Rat, error) {
	if r.num == 0 {
		return Rat{}, ErrDivisionByZero
	}
	return reduce(r.Den(), r.num), nil
}

func (r Rat) Neg() Rat {
	return Rat{num: -r.num, den: r.Den()}
}

// Cmp compares by cross multiplication: -1 if r < o, 0 if equal, 1 if r > o.
func (r Rat) Cmp(o Rat) int {
	a, b := r.num*o.Den(), o.num*r.Den()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (r Rat) Less(o Rat) bool  { return r.Cmp(o) < 0 }
func (r Rat) Equal(o Rat) bool { return r.Cmp(o) == 0 }

func (r Rat) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	default:
		return 0
	}
}

// Floor returns the largest integer <= r, rounding towards negative infinity.
func (r Rat) Floor() int64 {
	q := r.num / r.Den()
	if r.num%r.Den() != 0 && r.num < 0 {
		q--
	}
	return q
}

// Float64 is for display only. Internal comparisons go through Cmp.
func (r Rat) Float64() float64 {
	return float64(r.num) / float64(r.Den())
}

func (r Rat) String() string {
	if r.Den() == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	return fmt.Sprintf("%d/%d", r.num, r.Den())
}
