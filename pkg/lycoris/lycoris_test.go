package lycoris_test

import (
	"testing"

	"github.com/masamoto1982/Lycoris/pkg/lycoris"
)

func TestExecuteAndStackSnapshot(t *testing.T) {
	m := lycoris.New()
	if _, err := m.Execute("5 3 add"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := m.StackSnapshot()
	if len(got) != 1 || got[0] != "8" {
		t.Fatalf("StackSnapshot() = %v, want [8]", got)
	}
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	src := lycoris.New()
	if _, err := src.Execute("[dup mul] 'square' def"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	blob, err := src.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	dst := lycoris.New()
	if corrupt, err := dst.LoadState(blob); err != nil {
		t.Fatalf("LoadState: %v", err)
	} else if len(corrupt) != 0 {
		t.Fatalf("LoadState reported corrupt entries: %v", corrupt)
	}

	if _, err := dst.Execute("6 [square] run"); err != nil {
		t.Fatalf("Execute after load: %v", err)
	}
	if got := dst.StackSnapshot(); len(got) != 1 || got[0] != "36" {
		t.Fatalf("StackSnapshot() after reload = %v, want [36]", got)
	}
}

func TestTokenizeDoesNotEvaluate(t *testing.T) {
	m := lycoris.New()
	toks, err := m.Tokenize("5 3 add")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if len(m.StackSnapshot()) != 0 {
		t.Fatal("Tokenize must not mutate the stack")
	}
}

func TestOutputBufferAccumulatesAcrossCalls(t *testing.T) {
	m := lycoris.New()
	if _, err := m.Execute("1 print"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := m.Execute("2 print"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := "1\n2\n"; m.OutputBuffer() != want {
		t.Errorf("OutputBuffer() = %q, want %q", m.OutputBuffer(), want)
	}
}
