// Package rational implements Lycoris's arbitrary-precision exact fraction
// arithmetic. Every Rational is kept normalized: the denominator is always
// positive and the fraction is always in lowest terms, so equality and
// comparison never need to cross-multiply a non-reduced pair.
package rational

import (
	"math/big"
	"strings"

	"github.com/masamoto1982/Lycoris/internal/lycerrors"
)

// DefaultMaxExponent bounds the absolute value of an exponent accepted by
// Pow, per the spec's "configured upper bound" (default 10000).
const DefaultMaxExponent = 10000

// Rational is an exact fraction Num/Den with Den > 0 and
// gcd(|Num|, Den) = 1. The zero value is not a valid Rational; use FromInt64
// or New.
type Rational struct {
	Num *big.Int
	Den *big.Int
}

// FromInt64 returns the integer n as Rational(n, 1).
func FromInt64(n int64) Rational {
	return Rational{Num: big.NewInt(n), Den: big.NewInt(1)}
}

// FromBigInt returns the integer n as Rational(n, 1).
func FromBigInt(n *big.Int) Rational {
	return Rational{Num: new(big.Int).Set(n), Den: big.NewInt(1)}
}

// New builds a normalized Rational from num/den. den must be non-zero; a
// negative den is folded into the sign of num.
func New(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, lycerrors.NewDomainError("division by zero")
	}
	return normalize(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// normalize reduces num/den to lowest terms and makes den positive. It
// takes ownership of both arguments.
func normalize(num, den *big.Int) Rational {
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	if num.Sign() == 0 {
		return Rational{Num: big.NewInt(0), Den: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Cmp(big.NewInt(1)) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	return Rational{Num: num, Den: den}
}

// IsInteger reports whether r reduces to a whole number.
func (r Rational) IsInteger() bool {
	return r.Den.Cmp(big.NewInt(1)) == 0
}

// Sign returns -1, 0, or 1 following the numerator's sign (the denominator
// is always positive).
func (r Rational) Sign() int {
	return r.Num.Sign()
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	num := new(big.Int).Add(
		new(big.Int).Mul(r.Num, o.Den),
		new(big.Int).Mul(o.Num, r.Den),
	)
	den := new(big.Int).Mul(r.Den, o.Den)
	return normalize(num, den)
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	num := new(big.Int).Sub(
		new(big.Int).Mul(r.Num, o.Den),
		new(big.Int).Mul(o.Num, r.Den),
	)
	den := new(big.Int).Mul(r.Den, o.Den)
	return normalize(num, den)
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	num := new(big.Int).Mul(r.Num, o.Num)
	den := new(big.Int).Mul(r.Den, o.Den)
	return normalize(num, den)
}

// Div returns r / o. It fails with DomainError when o's numerator is zero.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.Num.Sign() == 0 {
		return Rational{}, lycerrors.NewDomainError("division by zero")
	}
	num := new(big.Int).Mul(r.Num, o.Den)
	den := new(big.Int).Mul(r.Den, o.Num)
	return normalize(num, den), nil
}

// Mod returns r mod o. Both operands must be integers; fails with
// DomainError otherwise, or when o is zero.
func (r Rational) Mod(o Rational) (Rational, error) {
	if !r.IsInteger() || !o.IsInteger() {
		return Rational{}, lycerrors.NewDomainError("mod requires integer operands")
	}
	if o.Num.Sign() == 0 {
		return Rational{}, lycerrors.NewDomainError("division by zero")
	}
	m := new(big.Int).Mod(r.Num, new(big.Int).Abs(o.Num))
	return FromBigInt(m), nil
}

// Pow raises r to the integer exponent exp (which must itself be an
// integer Rational). A negative exponent inverts r first; zero raised to a
// negative exponent is a DomainError. |exp| beyond maxExponent (use
// DefaultMaxExponent when the caller has no override) fails with
// LimitExceeded.
func (r Rational) Pow(exp Rational, maxExponent int64) (Rational, error) {
	if !exp.IsInteger() {
		return Rational{}, lycerrors.NewDomainError("pow requires an integer exponent")
	}
	e := exp.Num
	if e.CmpAbs(big.NewInt(maxExponent)) > 0 {
		return Rational{}, lycerrors.NewLimitExceededError("exponent magnitude exceeds the configured limit")
	}
	if e.Sign() == 0 {
		return FromInt64(1), nil
	}
	base := r
	negative := e.Sign() < 0
	if negative {
		if r.Num.Sign() == 0 {
			return Rational{}, lycerrors.NewDomainError("zero cannot be raised to a negative power")
		}
		base = Rational{Num: base.Den, Den: base.Num}
		if base.Den.Sign() < 0 {
			base = normalize(new(big.Int).Set(base.Num), new(big.Int).Set(base.Den))
		}
	}
	ei := new(big.Int).Abs(e)
	num := new(big.Int).Exp(base.Num, ei, nil)
	den := new(big.Int).Exp(base.Den, ei, nil)
	return normalize(num, den), nil
}

// Cmp compares r to o: -1 if r<o, 0 if equal, 1 if r>o. Both denominators
// are positive, so the cross-multiplied comparison needs no sign handling
// beyond big.Int's own.
func (r Rational) Cmp(o Rational) int {
	left := new(big.Int).Mul(r.Num, o.Den)
	right := new(big.Int).Mul(o.Num, r.Den)
	return left.Cmp(right)
}

// Equal reports whether r and o denote the same value.
func (r Rational) Equal(o Rational) bool {
	return r.Num.Cmp(o.Num) == 0 && r.Den.Cmp(o.Den) == 0
}

// String renders the canonical textual form: plain digits for integers,
// "num/den" (sign on the numerator) otherwise.
func (r Rational) String() string {
	if r.IsInteger() {
		return r.Num.String()
	}
	return r.Num.String() + "/" + r.Den.String()
}

// FromDecimalParts builds the exact rational for a decimal literal
// "[sign]intDigits[.fracDigits][e[sign]exponent]" whose pieces have
// already been split out by the tokenizer. fracDigits and exponent may be
// empty/zero. The conversion is exact: A.B becomes
// (A*10^|B| + B) / 10^|B|, then shifted by the exponent as a power-of-ten
// multiplication or division.
func FromDecimalParts(negative bool, intDigits, fracDigits string, exponent int64) (Rational, error) {
	intDigits = defaultZero(intDigits)
	combined := intDigits + fracDigits
	num, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return Rational{}, lycerrors.NewSyntaxError("invalid numeric literal", lycerrors.NoOffset)
	}
	den := pow10(int64(len(fracDigits)))
	if negative {
		num.Neg(num)
	}
	r := normalize(num, den)
	return r.shiftDecimal(exponent), nil
}

// shiftDecimal returns r * 10^exp (exp may be negative), exactly.
func (r Rational) shiftDecimal(exp int64) Rational {
	if exp == 0 {
		return r
	}
	if exp > 0 {
		num := new(big.Int).Mul(r.Num, pow10(exp))
		return normalize(num, new(big.Int).Set(r.Den))
	}
	den := new(big.Int).Mul(r.Den, pow10(-exp))
	return normalize(new(big.Int).Set(r.Num), den)
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

func defaultZero(s string) string {
	if s == "" {
		return "0"
	}
	return strings.TrimLeft(s, "+")
}
