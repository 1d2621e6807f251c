// Package lycoris is the public facade over Lycoris's evaluator: new,
// execute, stack snapshot, dictionary snapshot, output buffer, and
// save/load state, plus a tokens-only entry point for editor tooling.
// Hosts embedding Lycoris should depend on this package, not on
// internal/interp directly.
package lycoris

import (
	"github.com/masamoto1982/Lycoris/internal/interp"
	"github.com/masamoto1982/Lycoris/internal/lexer"
	"github.com/masamoto1982/Lycoris/internal/persist"
)

// Machine is a running Lycoris evaluator: one stack, one dictionary, one
// output buffer. It is not safe for concurrent use; a caller must not
// invoke another method while a call is already in progress.
type Machine struct {
	eval *interp.Evaluator
}

// New returns a fresh Machine with the built-in dictionary seeded and an
// empty stack and output buffer.
func New() *Machine {
	return &Machine{eval: interp.New()}
}

// SetMaxRecursionDepth overrides the default recursion-depth guard.
func (m *Machine) SetMaxRecursionDepth(n int) {
	m.eval.SetMaxRecursionDepth(n)
}

// Execute tokenizes and runs source against the machine's live state,
// returning the output text produced during this call. On a typed error
// the stack and dictionary are rolled back to their state immediately
// before the failing token; the output buffer is not rolled back.
func (m *Machine) Execute(source string) (string, error) {
	return m.eval.Execute(source)
}

// Tokenize exposes the tokenizer standalone, with no evaluation, for
// editor tooling and inspection.
func (m *Machine) Tokenize(source string) ([]lexer.Token, error) {
	return lexer.Tokenize(source, m.eval.Dictionary())
}

// StackSnapshot returns the canonical text of every stack value,
// bottom-to-top.
func (m *Machine) StackSnapshot() []string {
	return m.eval.StackSnapshot()
}

// DictionaryEntry is one row of DictionarySnapshot's result.
type DictionaryEntry = interp.DictionaryEntrySnapshot

// DictionarySnapshot returns the user dictionary entries (name,
// body_canonical, color), restricted to names starting with prefix. Pass
// an empty prefix for the whole dictionary.
func (m *Machine) DictionarySnapshot(prefix string) []DictionaryEntry {
	return m.eval.DictionarySnapshot(prefix)
}

// OutputBuffer returns the accumulated output text. Reading it does not
// clear it.
func (m *Machine) OutputBuffer() string {
	return m.eval.OutputBuffer()
}

// SaveState serializes the user dictionary (built-ins and the stack are
// never persisted) to a YAML blob.
func (m *Machine) SaveState() ([]byte, error) {
	return persist.Serialize(m.eval.Dictionary())
}

// LoadState installs every entry from blob into the machine's live
// dictionary. Entries whose stored body fails to re-tokenize are skipped
// and reported in the returned error list; the rest still install.
func (m *Machine) LoadState(blob []byte) ([]error, error) {
	return persist.Deserialize(blob, m.eval.Dictionary())
}

// SaveStatePatch edits a single field of one persisted entry (by name)
// within a JSON rendering of the dictionary, without a full
// decode-mutate-encode round trip.
func (m *Machine) SaveStatePatch(name, field, newValue string) (string, error) {
	blob, err := persist.EntriesToJSON(m.eval.Dictionary())
	if err != nil {
		return "", err
	}
	return persist.PatchEntryField(blob, name, field, newValue)
}
