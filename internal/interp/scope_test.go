package interp_test

import (
	"testing"

	"github.com/masamoto1982/Lycoris/internal/interp"
)

func TestMapWithUnaryWord(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[dup mul] 'square' def")
	mustExecute(t, e, "[1 2 3] @square")
	stackWant(t, e, "[1 4 9]")
}

func TestMapOverEmptyVectorYieldsEmptyVector(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[] 2 @mul")
	stackWant(t, e, "[]")
}

func TestMapRequiresAVectorOperand(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "1 2 3")
	if _, err := e.Execute("@add"); err == nil {
		t.Fatal("expected an error when no vector is present to map over")
	}
}

func TestReduceOnEmptyVectorIsDomainError(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[]")
	if _, err := e.Execute("*add"); err == nil {
		t.Fatal("expected a DomainError reducing an empty vector")
	}
}

func TestReduceRequiresAVectorOperand(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "5")
	if _, err := e.Execute("*add"); err == nil {
		t.Fatal("expected a TypeError reducing a non-vector")
	}
}

func TestReduceSingleElementVectorIsIdentity(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "[42] *add")
	stackWant(t, e, "42")
}

func TestRunOnNonVectorIsTypeError(t *testing.T) {
	e := interp.New()
	mustExecute(t, e, "5")
	if _, err := e.Execute("run"); err == nil {
		t.Fatal("expected a TypeError running a non-vector")
	}
}
