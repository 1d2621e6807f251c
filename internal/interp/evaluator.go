// Package interp implements Lycoris's evaluator: a stack machine that
// consumes a token sequence and applies each token against a stack, a
// dictionary, and an output buffer, with scope-modified word dispatch
// (local, map, reduce, global) and guard-clause conditionals.
package interp

import (
	"fmt"

	"github.com/masamoto1982/Lycoris/internal/dict"
	"github.com/masamoto1982/Lycoris/internal/lexer"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// DefaultMaxRecursionDepth bounds nested vector execution (run inside run,
// or a user word whose body calls itself). Exceeding it fails with a typed
// LimitExceeded error rather than a Go stack overflow.
const DefaultMaxRecursionDepth = 1024

// Evaluator is Lycoris's runtime: a value stack, a word dictionary, and an
// accumulated output buffer. It is strictly single-threaded: a caller must
// not invoke another method while Execute is in progress.
type Evaluator struct {
	stack    []value.Value
	dict     *dict.Dict
	output   []byte
	depth    int
	maxDepth int
}

// New returns a fresh evaluator seeded with the built-in dictionary and an
// empty stack and output buffer.
func New() *Evaluator {
	e := &Evaluator{dict: dict.New(), maxDepth: DefaultMaxRecursionDepth}
	registerBuiltins(e.dict)
	return e
}

// SetMaxRecursionDepth overrides the recursion-depth guard for hosts that
// want a tighter or looser bound than the default.
func (e *Evaluator) SetMaxRecursionDepth(n int) {
	if n <= 0 {
		n = DefaultMaxRecursionDepth
	}
	e.maxDepth = n
}

// Push appends v to the top of the stack.
func (e *Evaluator) Push(v value.Value) { e.stack = append(e.stack, v) }

// Pop removes and returns the top of the stack, or ArityError on underflow.
func (e *Evaluator) Pop() (value.Value, error) {
	if len(e.stack) == 0 {
		return value.Value{}, lycerrors.NewArityError("stack underflow")
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}

// PopN removes and returns the top n values in their original
// bottom-to-top order, or ArityError if fewer than n are present.
func (e *Evaluator) PopN(n int) ([]value.Value, error) {
	if n < 0 {
		return nil, lycerrors.NewArityError("cannot pop a negative count")
	}
	if len(e.stack) < n {
		return nil, lycerrors.NewArityError("stack underflow")
	}
	out := append([]value.Value(nil), e.stack[len(e.stack)-n:]...)
	e.stack = e.stack[:len(e.stack)-n]
	return out, nil
}

// StackLen returns the current stack depth.
func (e *Evaluator) StackLen() int { return len(e.stack) }

// Peek returns the value fromTop positions below the top (0 = top itself)
// without removing it.
func (e *Evaluator) Peek(fromTop int) (value.Value, error) {
	idx := len(e.stack) - 1 - fromTop
	if idx < 0 || idx >= len(e.stack) {
		return value.Value{}, lycerrors.NewArityError("stack underflow")
	}
	return e.stack[idx], nil
}

// Dictionary exposes the evaluator's dictionary for lookup/define/undefine.
func (e *Evaluator) Dictionary() *dict.Dict { return e.dict }

// Print appends s verbatim to the output buffer.
func (e *Evaluator) Print(s string) { e.output = append(e.output, s...) }

// OutputBuffer returns the accumulated output text. Reading it does not
// clear it; only the `clear` built-in or a fresh Evaluator does.
func (e *Evaluator) OutputBuffer() string { return string(e.output) }

// ClearOutput resets the output buffer to empty.
func (e *Evaluator) ClearOutput() { e.output = e.output[:0] }

// StackSnapshot returns the canonical text of every stack value, ordered
// bottom-to-top.
func (e *Evaluator) StackSnapshot() []string {
	out := make([]string, len(e.stack))
	for i, v := range e.stack {
		out[i] = v.Canonical()
	}
	return out
}

// DictionaryEntrySnapshot is one row of DictionarySnapshot's result.
type DictionaryEntrySnapshot struct {
	Name          string
	BodyCanonical string
	Color         string
}

// DictionarySnapshot returns the user dictionary entries in definition
// order, restricted to names starting with prefix (an empty prefix
// matches everything).
func (e *Evaluator) DictionarySnapshot(prefix string) []DictionaryEntrySnapshot {
	entries := e.dict.UserEntries()
	out := make([]DictionaryEntrySnapshot, 0, len(entries))
	for _, entry := range entries {
		if !hasPrefix(entry.Name, prefix) {
			continue
		}
		out = append(out, DictionaryEntrySnapshot{
			Name:          entry.Name,
			BodyCanonical: entry.Source,
			Color:         entry.Color,
		})
	}
	return out
}

func hasPrefix(name, prefix string) bool {
	if len(prefix) > len(name) {
		return false
	}
	return name[:len(prefix)] == prefix
}

// RunVector executes body's elements against the real stack: literals push
// themselves, word references dispatch. It is the single point of
// recursion-depth accounting (run inside run, and a local-scope user
// word's own body), so every kind of vector execution, the `run` built-in,
// a user word's body, and a map/reduce/global per-element word call whose
// entry is itself a user word, funnels through here exactly once per
// nesting level.
func (e *Evaluator) RunVector(body []value.Value) error {
	if e.depth >= e.maxDepth {
		return lycerrors.NewLimitExceededError(fmt.Sprintf("maximum recursion depth (%d) exceeded", e.maxDepth))
	}
	e.depth++
	defer func() { e.depth-- }()

	for _, elem := range body {
		if elem.Kind == value.KindWordRef {
			if err := e.dispatchWordRef(elem.Scope, elem.Str); err != nil {
				return err
			}
			continue
		}
		e.Push(elem)
	}
	return nil
}

// dispatchWordRef resolves name in the dictionary and applies scope
// dispatch.
func (e *Evaluator) dispatchWordRef(scope byte, name string) error {
	entry, err := e.dict.Lookup(name)
	if err != nil {
		return lycerrors.NewUnknownWordError(name, lycerrors.NoOffset)
	}
	switch scope {
	case 0:
		return e.runEntryOnce(entry)
	case '@':
		return e.dispatchMap(entry)
	case '*':
		return e.dispatchReduce(entry)
	case '#':
		return e.dispatchGlobal(entry)
	default:
		return lycerrors.NewSyntaxError("unrecognized scope modifier", lycerrors.NoOffset)
	}
}

// runEntryOnce executes entry exactly once against the real stack: a
// built-in calls its Go function directly, a user word replays its body
// (through the guarded RunVector).
func (e *Evaluator) runEntryOnce(entry *dict.Entry) error {
	if entry.IsBuiltin {
		return entry.Fn(e)
	}
	return e.RunVector(entry.Body)
}

// runOnLocalStack executes entry once against a fresh stack seeded with
// local, returning whatever remains on that stack afterward. The real
// stack is swapped out for the duration and restored before returning;
// this is safe only because the evaluator is single-threaded.
func (e *Evaluator) runOnLocalStack(entry *dict.Entry, local []value.Value) ([]value.Value, error) {
	saved := e.stack
	e.stack = local
	err := e.runEntryOnce(entry)
	result := e.stack
	e.stack = saved
	return result, err
}

// Execute tokenizes and runs source against the evaluator's live state.
// On success it returns the text appended to the output buffer's tail
// since this call began. On failure it aborts at the failing token,
// restoring the stack and dictionary to the state they held immediately
// before that token executed, appends a formatted error description to
// the output buffer regardless, and returns the error.
func (e *Evaluator) Execute(source string) (string, error) {
	outputStart := len(e.output)

	toks, err := lexer.Tokenize(source, e.dict)
	if err != nil {
		e.Print(lycerrors.FormatWithSource(err, source) + "\n")
		return e.outputSince(outputStart), err
	}

	if err := e.runTopLevel(toks); err != nil {
		e.Print(lycerrors.FormatWithSource(err, source) + "\n")
		return e.outputSince(outputStart), err
	}
	return e.outputSince(outputStart), nil
}

// outputSince returns the output buffer appended since start. The `clear`
// built-in can shrink the buffer below start mid-call (it resets the
// whole buffer), so start is clamped first.
func (e *Evaluator) outputSince(start int) string {
	if start > len(e.output) {
		start = 0
	}
	return string(e.output[start:])
}

// runTopLevel routes a top-level token sequence to either the plain
// token-by-token evaluator or the guard-clause evaluator, depending on
// whether any KindGuardSep tokens are present.
func (e *Evaluator) runTopLevel(toks []lexer.Token) error {
	if !containsGuardSep(toks) {
		return e.runSequence(toks)
	}
	return e.runGuardForm(toks)
}

func containsGuardSep(toks []lexer.Token) bool {
	for _, t := range toks {
		if t.Kind == lexer.KindGuardSep {
			return true
		}
	}
	return false
}

// runSequence executes toks one at a time against the real stack,
// snapshotting the stack and the user dictionary entries before each token
// so a failing token's partial effects (its own pops, and any words a
// vector it runs defined or removed) are undone while prior tokens'
// effects remain.
func (e *Evaluator) runSequence(toks []lexer.Token) error {
	for _, tok := range toks {
		pre := append([]value.Value(nil), e.stack...)
		preEntries := e.dict.UserEntries()
		if err := e.runToken(tok); err != nil {
			e.stack = pre
			for _, entry := range e.dict.UserEntries() {
				_ = e.dict.Undefine(entry.Name)
			}
			for _, entry := range preEntries {
				_ = e.dict.Define(entry.Name, entry.Body, entry.Source, entry.Color)
			}
			return err
		}
	}
	return nil
}

func (e *Evaluator) runToken(tok lexer.Token) error {
	switch tok.Kind {
	case lexer.KindLiteral:
		e.Push(tok.Val)
		return nil
	case lexer.KindWordRef:
		return e.dispatchWordRef(tok.Scope, tok.Name)
	default:
		return lycerrors.NewSyntaxError("unexpected token in this position", tok.Offset)
	}
}
