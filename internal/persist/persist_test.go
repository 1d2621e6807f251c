package persist_test

import (
	"strings"
	"testing"

	"github.com/masamoto1982/Lycoris/internal/interp"
	"github.com/masamoto1982/Lycoris/internal/persist"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	src := interp.New()
	if _, err := src.Execute("[dup mul] 'square' def"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := src.Execute("[square square mul] 'fourth' def"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	blob, err := persist.Serialize(src.Dictionary())
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	dst := interp.New()
	if corrupt, err := persist.Deserialize(blob, dst.Dictionary()); err != nil {
		t.Fatalf("Deserialize: %v", err)
	} else if len(corrupt) != 0 {
		t.Fatalf("Deserialize reported corrupt entries: %v", corrupt)
	}

	if _, err := dst.Execute("3 [square] run"); err != nil {
		t.Fatalf("Execute after reload: %v", err)
	}
	if got := dst.StackSnapshot(); len(got) != 1 || got[0] != "9" {
		t.Fatalf("stack after reload = %v, want [9]", got)
	}
}

func TestDeserializeSkipsCorruptEntryButKeepsRest(t *testing.T) {
	blob := []byte(`name: good
body: "[dup]"
---
name: bad
body: "[dup"
`)
	d := interp.New().Dictionary()
	corrupt, err := persist.Deserialize(blob, d)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(corrupt) != 1 {
		t.Fatalf("got %d corrupt entries, want 1: %v", len(corrupt), corrupt)
	}
	if _, err := d.Lookup("good"); err != nil {
		t.Errorf("expected 'good' to have installed despite the corrupt sibling: %v", err)
	}
	if _, err := d.Lookup("bad"); err == nil {
		t.Error("expected 'bad' to have been skipped")
	}
}

func TestDeserializeSkipsYAMLSyntaxErrorInOneDocumentButKeepsRest(t *testing.T) {
	blob := []byte(`name: good
body: "[dup]"
---
name: bad
  body: [ this is not: valid yaml
`)
	d := interp.New().Dictionary()
	corrupt, err := persist.Deserialize(blob, d)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(corrupt) != 1 {
		t.Fatalf("got %d corrupt entries, want 1: %v", len(corrupt), corrupt)
	}
	if _, err := d.Lookup("good"); err != nil {
		t.Errorf("expected 'good' to have installed despite the malformed sibling document: %v", err)
	}
}

func TestPatchEntryField(t *testing.T) {
	e := interp.New()
	if _, err := e.Execute("[dup] 'twice' def"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	blob, err := persist.EntriesToJSON(e.Dictionary())
	if err != nil {
		t.Fatalf("EntriesToJSON: %v", err)
	}

	patched, err := persist.PatchEntryField(blob, "twice", "color", "blue")
	if err != nil {
		t.Fatalf("PatchEntryField: %v", err)
	}
	if !strings.Contains(patched, `"color":"blue"`) {
		t.Errorf("patched blob = %s, want it to contain color:blue", patched)
	}
}

func TestPatchEntryFieldUnknownNameIsNotFound(t *testing.T) {
	e := interp.New()
	blob, err := persist.EntriesToJSON(e.Dictionary())
	if err != nil {
		t.Fatalf("EntriesToJSON: %v", err)
	}
	if _, err := persist.PatchEntryField(blob, "nope", "color", "blue"); err == nil {
		t.Fatal("expected NotFound patching an unknown entry")
	}
}
