// Package value defines Lycoris's runtime value model: a closed, five-way
// tagged union (Rational, String, Bool, Nil, Vector) and its canonical
// textual form. Operations dispatch on the Kind tag rather than on
// subtype polymorphism.
package value

import (
	"strings"

	"github.com/masamoto1982/Lycoris/internal/rational"
)

// Kind discriminates the Value variants. The stack-facing contract is a
// closed five-variant union (Rational, String, Bool, Nil, Vector);
// KindWordRef is a sixth, internal-only variant that may appear solely as
// a Vector element, representing quoted code a vector carries
// homoiconically. The evaluator never pushes a bare KindWordRef value onto
// the real stack: word references are executed, not pushed, so KindWordRef
// is invisible at every public boundary except inside a Vector's own
// elements and that Vector's canonical text.
type Kind int

const (
	KindRational Kind = iota
	KindString
	KindBool
	KindNil
	KindVector
	KindWordRef
)

// String names a Kind for diagnostics (e.g. TypeError messages).
func (k Kind) String() string {
	switch k {
	case KindRational:
		return "Rational"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindNil:
		return "Nil"
	case KindVector:
		return "Vector"
	case KindWordRef:
		return "WordRef"
	default:
		return "Unknown"
	}
}

// Value is the only type that may appear on the evaluator's stack or
// inside a Vector. Exactly one field is meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Rat   rational.Rational
	Str   string
	Bool  bool
	Vec   []Value
	Scope byte // for KindWordRef: 0, '@', '*', or '#'
}

// Rational wraps a rational.Rational as a Value.
func Rational(r rational.Rational) Value { return Value{Kind: KindRational, Rat: r} }

// String wraps text as a Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolVal wraps a bool as a Value. (Named BoolVal, not Bool, so it does not
// collide with the Bool field above.)
func BoolVal(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Nil is the single Nil value.
var Nil = Value{Kind: KindNil}

// Vector wraps an ordered element slice as a Value. The slice is stored by
// reference; callers that build a Vector from a mutable slice should pass a
// copy if they intend to keep mutating the original (Vector, once pushed,
// is treated by the evaluator as immutable).
func Vector(elems []Value) Value { return Value{Kind: KindVector, Vec: elems} }

// WordRef wraps a quoted word reference (scope + name) as a Vector
// element. scope is 0, '@', '*', or '#'. It must never be pushed directly
// onto the evaluator's real stack.
func WordRef(scope byte, name string) Value {
	return Value{Kind: KindWordRef, Scope: scope, Str: name}
}

// TypeName returns the Kind name, used in TypeError messages.
func (v Value) TypeName() string { return v.Kind.String() }

// Canonical renders v in the textual form used for display,
// re-tokenization round-trips, and stored user-word source.
func (v Value) Canonical() string {
	var sb strings.Builder
	v.writeCanonical(&sb)
	return sb.String()
}

func (v Value) writeCanonical(sb *strings.Builder) {
	switch v.Kind {
	case KindRational:
		sb.WriteString(v.Rat.String())
	case KindString:
		sb.WriteByte('\'')
		sb.WriteString(v.Str)
		sb.WriteByte('\'')
	case KindBool:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNil:
		sb.WriteString("nil")
	case KindVector:
		sb.WriteByte('[')
		for i, elem := range v.Vec {
			if i > 0 {
				sb.WriteByte(' ')
			}
			elem.writeCanonical(sb)
		}
		sb.WriteByte(']')
	case KindWordRef:
		if v.Scope != 0 {
			sb.WriteByte(v.Scope)
		}
		sb.WriteString(v.Str)
	}
}

// Equal reports structural equality: same Kind, and (for Vector)
// element-wise equal children.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindRational:
		return v.Rat.Equal(o.Rat)
	case KindString:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	case KindNil:
		return true
	case KindVector:
		if len(v.Vec) != len(o.Vec) {
			return false
		}
		for i := range v.Vec {
			if !v.Vec[i].Equal(o.Vec[i]) {
				return false
			}
		}
		return true
	case KindWordRef:
		return v.Scope == o.Scope && v.Str == o.Str
	default:
		return false
	}
}

// Truthy reports whether v counts as true for guard-clause evaluation.
// Only Bool(true) is truthy; every other value, including Bool(false),
// Nil, and non-boolean values, is not. (Guard conditions are expected to
// leave a Bool; anything else simply never matches a clause.)
func (v Value) Truthy() bool {
	return v.Kind == KindBool && v.Bool
}
