package interp

import (
	"github.com/masamoto1982/Lycoris/internal/lexer"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// runGuardForm executes a top-level `<cond> : <body> :` ... `<default>`
// sequence. toks is split on its KindGuardSep tokens into segments; an
// even number of separators yields segments
// [cond1, body1, cond2, body2, ..., defaultExpr]. Each cond is evaluated
// in turn on a speculative copy of the stack; the first that leaves
// Bool(true) on top runs its body against the real stack and the rest of
// the form (remaining clauses and the default) is skipped. If no
// condition matches, the default segment runs against the real stack. An
// odd number of separators (no well-formed trailing default, or a clause
// missing its body) is a SyntaxError.
func (e *Evaluator) runGuardForm(toks []lexer.Token) error {
	segments := splitOnGuardSep(toks)
	if len(segments)%2 != 1 {
		return lycerrors.NewSyntaxError("ill-formed guard clause: expected '<cond> : <body> :' pairs followed by a default", guardOffset(toks))
	}

	clauseCount := (len(segments) - 1) / 2
	for i := 0; i < clauseCount; i++ {
		cond := segments[2*i]
		body := segments[2*i+1]

		matched, err := e.evalGuardCondition(cond)
		if err != nil {
			return err
		}
		if matched {
			return e.runSequence(body)
		}
	}

	defaultExpr := segments[len(segments)-1]
	return e.runSequence(defaultExpr)
}

// evalGuardCondition runs cond against a speculative copy of the real
// stack and reports whether it left Bool(true) on top. The real stack is
// untouched regardless of the outcome; only a matching clause's body (run
// by the caller afterward) ever mutates it.
func (e *Evaluator) evalGuardCondition(cond []lexer.Token) (bool, error) {
	saved := e.stack
	e.stack = append([]value.Value(nil), saved...)
	err := e.runSequence(cond)
	top, peekErr := e.Peek(0)
	matched := err == nil && peekErr == nil && top.Truthy()
	e.stack = saved
	if err != nil {
		return false, err
	}
	return matched, nil
}

func splitOnGuardSep(toks []lexer.Token) [][]lexer.Token {
	var segments [][]lexer.Token
	var cur []lexer.Token
	for _, t := range toks {
		if t.Kind == lexer.KindGuardSep {
			segments = append(segments, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	segments = append(segments, cur)
	return segments
}

func guardOffset(toks []lexer.Token) int {
	if len(toks) == 0 {
		return lycerrors.NoOffset
	}
	return toks[0].Offset
}
