// Package dict implements Lycoris's dictionary: a byte-indexed trie of
// word names supporting longest-prefix lookup, the structure the tokenizer
// needs to split unwhitespaced source into word references. It depends
// only on the value and lycerrors packages; the evaluator depends on dict, not the other
// way around, so builtin word bodies are expressed against the Machine
// interface defined here rather than against the concrete evaluator type.
package dict

import (
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// Machine is the subset of evaluator behavior a builtin word needs. It is
// defined in this package (not interp) so dict has no dependency on interp,
// while interp.Evaluator can implement it and hand itself to a dict.Entry's
// Fn.
type Machine interface {
	Pop() (value.Value, error)
	PopN(n int) ([]value.Value, error)
	Push(v value.Value)
	StackLen() int
	Peek(fromTop int) (value.Value, error)
	Dictionary() *Dict
	Print(s string)
	ClearOutput()
	RunVector(body []value.Value) error
}

// BuiltinFunc implements one built-in word. It observes and mutates the
// machine's stack, dictionary, and output buffer directly.
type BuiltinFunc func(m Machine) error

// Entry is one dictionary binding: either a built-in (engine-provided
// BuiltinFunc) or a user word (a Vector body plus its display source and
// color).
type Entry struct {
	Name      string
	IsBuiltin bool
	Fn        BuiltinFunc // set when IsBuiltin
	Body      []value.Value
	Source    string
	Color     string
}

type node struct {
	children map[byte]*node
	entry    *Entry // non-nil when a word terminates here
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// Dict is a trie keyed by the bytes of a word name. Insertion and lookup
// are O(len(name)).
type Dict struct {
	root         *node
	userOrder    []string // insertion order of user entries, for serialization/display
	builtinNames map[string]bool
}

// New returns an empty dictionary with no entries.
func New() *Dict {
	return &Dict{root: newNode(), builtinNames: make(map[string]bool)}
}

// RegisterBuiltin seeds a built-in word. Built-ins are meant to be
// installed once at startup; calling this after user words exist is safe
// but RegisterBuiltin never checks for a name conflict with a user word
// (built-ins always win ties by construction: seed builtins first).
func (d *Dict) RegisterBuiltin(name string, fn BuiltinFunc) {
	n := d.insertNode(name)
	n.entry = &Entry{Name: name, IsBuiltin: true, Fn: fn}
	d.builtinNames[name] = true
}

// Define installs or replaces a user word. It fails with NameConflict if
// name matches a built-in. A redefinition of an existing user word
// replaces the entry atomically (the old Entry is simply swapped out).
func (d *Dict) Define(name string, body []value.Value, source, color string) error {
	if d.builtinNames[name] {
		return lycerrors.NewNameConflictError(name)
	}
	n := d.insertNode(name)
	if n.entry == nil {
		d.userOrder = append(d.userOrder, name)
	}
	n.entry = &Entry{Name: name, Body: body, Source: source, Color: color}
	return nil
}

// Undefine removes a user word. Fails with ProtectedBuiltin if name is a
// built-in, or NotFound if no entry exists.
func (d *Dict) Undefine(name string) error {
	if d.builtinNames[name] {
		return lycerrors.NewProtectedBuiltinError(name)
	}
	n := d.lookupNode(name)
	if n == nil || n.entry == nil {
		return lycerrors.NewNotFoundError(name)
	}
	n.entry = nil
	for i, nm := range d.userOrder {
		if nm == name {
			d.userOrder = append(d.userOrder[:i], d.userOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Lookup returns the binding for name, or NotFound.
func (d *Dict) Lookup(name string) (*Entry, error) {
	n := d.lookupNode(name)
	if n == nil || n.entry == nil {
		return nil, lycerrors.NewNotFoundError(name)
	}
	return n.entry, nil
}

// LongestPrefix walks the trie from src[offset:] and returns the length
// and entry of the longest terminal reached, or ok=false if no prefix of
// src[offset:] names an entry.
func (d *Dict) LongestPrefix(src string, offset int) (length int, entry *Entry, ok bool) {
	cur := d.root
	bestLen := 0
	var bestEntry *Entry
	for i := offset; i < len(src); i++ {
		child, present := cur.children[src[i]]
		if !present {
			break
		}
		cur = child
		if cur.entry != nil {
			bestLen = i - offset + 1
			bestEntry = cur.entry
		}
	}
	if bestEntry == nil {
		return 0, nil, false
	}
	return bestLen, bestEntry, true
}

// UserEntries returns the user entries in insertion order, for
// serialization and dictionary_snapshot.
func (d *Dict) UserEntries() []*Entry {
	out := make([]*Entry, 0, len(d.userOrder))
	for _, name := range d.userOrder {
		n := d.lookupNode(name)
		if n != nil && n.entry != nil {
			out = append(out, n.entry)
		}
	}
	return out
}

func (d *Dict) insertNode(name string) *node {
	cur := d.root
	for i := 0; i < len(name); i++ {
		b := name[i]
		child, present := cur.children[b]
		if !present {
			child = newNode()
			cur.children[b] = child
		}
		cur = child
	}
	return cur
}

func (d *Dict) lookupNode(name string) *node {
	cur := d.root
	for i := 0; i < len(name); i++ {
		child, present := cur.children[name[i]]
		if !present {
			return nil
		}
		cur = child
	}
	return cur
}
