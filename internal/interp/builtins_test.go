package interp_test

import (
	"testing"

	"github.com/masamoto1982/Lycoris/internal/interp"
)

func TestStackOps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"dup drop is identity", "5 dup drop", []string{"5"}},
		{"swap swap is identity", "1 2 swap swap", []string{"1", "2"}},
		{"over", "1 2 over", []string{"1", "2", "1"}},
		{"rot", "1 2 3 rot", []string{"2", "3", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := interp.New()
			mustExecute(t, e, tt.src)
			stackWant(t, e, tt.want...)
		})
	}
}

func TestVectorOps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"vec builds from a count", "1 2 3 3 vec", []string{"[1 2 3]"}},
		{"unpack spreads elements", "[1 2 3] unpack", []string{"1", "2", "3"}},
		{"nth positive index", "[10 20 30] 1 nth", []string{"20"}},
		{"nth negative index", "[10 20 30] -1 nth", []string{"30"}},
		{"length", "[1 2 3 4] length", []string{"4"}},
		{"concat", "[1 2] [3 4] concat", []string{"[1 2 3 4]"}},
		{"append", "[1 2] 3 append", []string{"[1 2 3]"}},
		{"set replaces an element", "[1 2 3] 1 99 set", []string{"[1 99 3]"}},
		{"quote wraps one value", "5 quote", []string{"[5]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := interp.New()
			mustExecute(t, e, tt.src)
			stackWant(t, e, tt.want...)
		})
	}
}

func TestVectorConcatAssociativeWithEmptyIdentity(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[] [1 2] concat")
	stackWant(t, e, "[1 2]")

	e2 := interp.New()
	mustExecute(t, e2, "[1 2] [] concat")
	stackWant(t, e2, "[1 2]")
}

func TestNthOutOfRangeIsIndexError(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[1 2 3]")
	if _, err := e.Execute("5 nth"); err == nil {
		t.Fatal("expected an IndexError for an out-of-range index")
	}
}

func TestCommutativeArithmetic(t *testing.T) {
	for _, op := range []string{"add", "mul"} {
		e1 := interp.New()
		mustExecute(t, e1, "3 "+"7 "+op)
		e2 := interp.New()
		mustExecute(t, e2, "7 "+"3 "+op)
		if e1.StackSnapshot()[0] != e2.StackSnapshot()[0] {
			t.Errorf("%s is not commutative: %v vs %v", op, e1.StackSnapshot(), e2.StackSnapshot())
		}
	}
}

func TestComparisonOps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"lt true", "3 5 lt", "true"},
		{"lt false", "5 3 lt", "false"},
		{"le equal", "5 5 le", "true"},
		{"gt true", "5 3 gt", "true"},
		{"ge equal", "5 5 ge", "true"},
		{"eq rationals", "1 3 div 2 6 div eq", "true"},
		{"eq vectors structural", "[1 2] [1 2] eq", "true"},
		{"ne different kinds", "5 'five' ne", "true"},
		{"sign negative", "0 5 sub sign", "-1"},
		{"sign zero", "5 5 sub sign", "0"},
		{"not inverts", "true not", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := interp.New()
			mustExecute(t, e, tt.src)
			stackWant(t, e, tt.want)
		})
	}
}

func TestDefRejectsNameCollidingWithLiteralSyntax(t *testing.T) {
	e := interp.New()
	if _, err := e.Execute("[dup] 'true' def"); err == nil {
		t.Fatal("expected InvalidName defining a word named 'true'")
	}
	if _, err := e.Execute("[dup] '5' def"); err == nil {
		t.Fatal("expected InvalidName defining a word named '5'")
	}
}

func TestDefRejectsBuiltinName(t *testing.T) {
	e := interp.New()
	if _, err := e.Execute("[dup] 'add' def"); err == nil {
		t.Fatal("expected NameConflict redefining a built-in")
	}
}

func TestUndefRemovesUserWord(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[dup] 'twice' def")
	// Tokenization resolves every bareword against the live dictionary
	// before any token runs, so "twice" only fails to dispatch as
	// UnknownWord if it is removed by an earlier token within the *same*
	// Execute call (tokenized while still present, undefined by the time
	// its own turn comes).
	if _, err := e.Execute("'twice' undef twice"); err == nil {
		t.Fatal("expected UnknownWord dispatching a word undefined earlier in the same call")
	}
}

func TestUndefProtectsBuiltins(t *testing.T) {
	e := interp.New()
	if _, err := e.Execute("'add' undef"); err == nil {
		t.Fatal("expected ProtectedBuiltin undefining a built-in")
	}
}
