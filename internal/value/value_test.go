package value

import (
	"testing"

	"github.com/masamoto1982/Lycoris/internal/rational"
)

func TestCanonicalAtoms(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Rational(rational.FromInt64(8)), "8"},
		{Rational(rational.FromInt64(-3)), "-3"},
		{String("hello"), "'hello'"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{Nil, "nil"},
	}
	for _, tt := range tests {
		if got := tt.v.Canonical(); got != tt.want {
			t.Errorf("Canonical() = %q, want %q", got, tt.want)
		}
	}
}

func TestCanonicalVector(t *testing.T) {
	v := Vector([]Value{
		Rational(rational.FromInt64(1)),
		Rational(rational.FromInt64(2)),
		Vector([]Value{String("x")}),
	})
	want := "[1 2 ['x']]"
	if got := v.Canonical(); got != want {
		t.Errorf("Canonical() = %q, want %q", got, want)
	}
}

func TestCanonicalQuotedWordRef(t *testing.T) {
	v := Vector([]Value{WordRef(0, "dup"), WordRef('@', "mul")})
	want := "[dup @mul]"
	if got := v.Canonical(); got != want {
		t.Errorf("Canonical() = %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	a := Vector([]Value{Rational(rational.FromInt64(1)), BoolVal(true)})
	b := Vector([]Value{Rational(rational.FromInt64(1)), BoolVal(true)})
	c := Vector([]Value{Rational(rational.FromInt64(1)), BoolVal(false)})

	if !a.Equal(b) {
		t.Error("expected structurally identical vectors to be equal")
	}
	if a.Equal(c) {
		t.Error("expected vectors differing in one element to be unequal")
	}
	if Nil.Equal(BoolVal(false)) {
		t.Error("values of different kinds must never be equal")
	}
}

func TestTruthy(t *testing.T) {
	if !BoolVal(true).Truthy() {
		t.Error("Bool(true) should be truthy")
	}
	if BoolVal(false).Truthy() {
		t.Error("Bool(false) should not be truthy")
	}
	if Nil.Truthy() {
		t.Error("Nil should not be truthy")
	}
	if Rational(rational.FromInt64(1)).Truthy() {
		t.Error("a non-bool value should not be truthy")
	}
}
