package lexer

import "github.com/masamoto1982/Lycoris/internal/value"

// Kind discriminates the three things a top-level token can be: a value to
// push, a word reference to dispatch, or the guard-clause separator.
type Kind int

const (
	// KindLiteral carries a fully-parsed Value (Rational, String, Bool,
	// Nil, or Vector) to be pushed onto the stack as-is.
	KindLiteral Kind = iota
	// KindWordRef carries a (scope, name) pair naming a dictionary word to
	// dispatch.
	KindWordRef
	// KindGuardSep marks a ':' separating guard-clause clauses.
	KindGuardSep
)

// Token is one element of the flat sequence Tokenize produces. Word
// references are kept distinct from KindLiteral because they are executed,
// not pushed; only inside a Vector literal's own elements does a word
// reference become a value.WordRef Value, so that quoted code can be
// stored and later replayed by run/map/reduce.
type Token struct {
	Kind   Kind
	Val    value.Value // meaningful when Kind == KindLiteral
	Scope  byte        // meaningful when Kind == KindWordRef: 0, '@', '*', '#'
	Name   string      // meaningful when Kind == KindWordRef
	Offset int         // byte offset of the token's first character
}
