// Package lexer implements Lycoris's tokenizer: longest-match recognition
// of a source string into a flat token stream, consulting the dictionary
// for word-reference boundaries. The parser is folded into the tokenizer:
// every literal token it emits is already a fully-formed value.Value, not
// a raw lexeme needing a later parse pass.
package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/masamoto1982/Lycoris/internal/dict"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/rational"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// Tokenize scans src into a flat token sequence, consulting d for
// dictionary longest-match word references. Tokens are not separated by
// whitespace in general: whitespace only forces a split when the
// characters on either side would otherwise extend a longer match.
func Tokenize(src string, d *dict.Dict) ([]Token, error) {
	var toks []Token
	pos := 0
	for {
		pos = skipTrivia(src, pos, d)
		if pos >= len(src) {
			return toks, nil
		}
		ch := src[pos]

		switch {
		case ch == '\'':
			s, newPos, err := scanString(src, pos)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: KindLiteral, Val: value.String(s), Offset: pos})
			pos = newPos

		case ch == '[':
			v, newPos, err := scanVector(src, pos, d)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: KindLiteral, Val: v, Offset: pos})
			pos = newPos

		case ch == ']':
			return nil, lycerrors.NewSyntaxError("unmatched ']'", pos)

		case ch == ':':
			toks = append(toks, Token{Kind: KindGuardSep, Offset: pos})
			pos++

		case isNumberStart(src, pos):
			v, newPos, err := scanNumber(src, pos)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: KindLiteral, Val: v, Offset: pos})
			pos = newPos

		default:
			kind, val, scope, name, newPos, ok := scanWordOrReserved(src, pos, d)
			if !ok {
				return nil, lycerrors.NewSyntaxError("unknown token", pos)
			}
			if kind == KindLiteral {
				toks = append(toks, Token{Kind: KindLiteral, Val: val, Offset: pos})
			} else {
				toks = append(toks, Token{Kind: KindWordRef, Scope: scope, Name: name, Offset: pos})
			}
			pos = newPos
		}
	}
}

// skipTrivia advances past whitespace and '#'-to-end-of-line comments. A
// '#' immediately followed by a dictionary word is a global-scope word
// reference, not a comment, and is left in place for the caller.
func skipTrivia(src string, pos int, d *dict.Dict) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		case '#':
			if _, _, ok := d.LongestPrefix(src, pos+1); ok {
				return pos
			}
			for pos < len(src) && src[pos] != '\n' {
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}

// scanString consumes a '...'  string literal starting at pos (src[pos]
// must be '\''). Content is taken verbatim; no escape processing. The
// content is validated as UTF-8 and normalized to NFC (golang.org/x/text's
// unicode/norm) before being wrapped as a String value, so two source files
// that spell the same text with different combining-character sequences
// produce equal, canonical-round-tripping values.
func scanString(src string, pos int) (string, int, error) {
	start := pos + 1
	end := strings.IndexByte(src[start:], '\'')
	if end < 0 {
		return "", 0, lycerrors.NewSyntaxError("unterminated string", pos)
	}
	raw := src[start : start+end]
	if !norm.NFC.IsNormalString(raw) {
		raw = norm.NFC.String(raw)
	}
	return raw, start + end + 1, nil
}

// scanVector consumes a '[' ... ']' vector literal starting at pos
// (src[pos] must be '['), recursing into its own elements. Word
// references found inside become value.WordRef elements rather than
// dispatching immediately, since a vector's elements are suspended code,
// not an executed token stream.
func scanVector(src string, pos int, d *dict.Dict) (value.Value, int, error) {
	pos++ // consume '['
	var elems []value.Value
	for {
		pos = skipTrivia(src, pos, d)
		if pos >= len(src) {
			return value.Value{}, 0, lycerrors.NewSyntaxError("unmatched '['", pos)
		}
		if src[pos] == ']' {
			return value.Vector(elems), pos + 1, nil
		}
		ch := src[pos]
		switch {
		case ch == '\'':
			s, newPos, err := scanString(src, pos)
			if err != nil {
				return value.Value{}, 0, err
			}
			elems = append(elems, value.String(s))
			pos = newPos

		case ch == '[':
			v, newPos, err := scanVector(src, pos, d)
			if err != nil {
				return value.Value{}, 0, err
			}
			elems = append(elems, v)
			pos = newPos

		case ch == ':':
			return value.Value{}, 0, lycerrors.NewSyntaxError("':' is not valid inside a vector literal", pos)

		case isNumberStart(src, pos):
			v, newPos, err := scanNumber(src, pos)
			if err != nil {
				return value.Value{}, 0, err
			}
			elems = append(elems, v)
			pos = newPos

		default:
			kind, val, scope, name, newPos, ok := scanWordOrReserved(src, pos, d)
			if !ok {
				return value.Value{}, 0, lycerrors.NewSyntaxError("unknown token", pos)
			}
			if kind == KindLiteral {
				elems = append(elems, val)
			} else {
				elems = append(elems, value.WordRef(scope, name))
			}
			pos = newPos
		}
	}
}

// isNumberStart reports whether a number token can begin at pos: a digit,
// or a sign immediately followed by a digit.
func isNumberStart(src string, pos int) bool {
	if pos >= len(src) {
		return false
	}
	ch := src[pos]
	if isDigit(ch) {
		return true
	}
	if (ch == '+' || ch == '-') && pos+1 < len(src) && isDigit(src[pos+1]) {
		return true
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// scanNumber consumes a number literal at pos: either a fraction literal
// (digits '/' digits) or a decimal/scientific literal
// (digits ['.' digits] [('e'|'E') ['+'|'-'] digits]). The conversion to a
// Rational is always exact; no IEEE float is ever involved.
func scanNumber(src string, pos int) (value.Value, int, error) {
	start := pos
	negative := false
	if src[pos] == '+' || src[pos] == '-' {
		negative = src[pos] == '-'
		pos++
	}
	intStart := pos
	for pos < len(src) && isDigit(src[pos]) {
		pos++
	}
	intDigits := src[intStart:pos]

	if pos < len(src) && src[pos] == '/' && pos+1 < len(src) && isDigit(src[pos+1]) {
		fracStart := pos + 1
		p := fracStart
		for p < len(src) && isDigit(src[p]) {
			p++
		}
		denDigits := src[fracStart:p]
		num, err := rational.FromDecimalParts(negative, intDigits, "", 0)
		if err != nil {
			return value.Value{}, 0, err
		}
		den, err := rational.FromDecimalParts(false, denDigits, "", 0)
		if err != nil {
			return value.Value{}, 0, err
		}
		r, err := rational.New(num.Num, den.Num)
		if err != nil {
			return value.Value{}, 0, lycerrors.NewSyntaxError("invalid fraction literal", start)
		}
		return value.Rational(r), p, nil
	}

	fracDigits := ""
	if pos < len(src) && src[pos] == '.' && pos+1 < len(src) && isDigit(src[pos+1]) {
		p := pos + 1
		for p < len(src) && isDigit(src[p]) {
			p++
		}
		fracDigits = src[pos+1 : p]
		pos = p
	}

	var exponent int64
	if pos < len(src) && (src[pos] == 'e' || src[pos] == 'E') {
		p := pos + 1
		expNeg := false
		if p < len(src) && (src[p] == '+' || src[p] == '-') {
			expNeg = src[p] == '-'
			p++
		}
		if p < len(src) && isDigit(src[p]) {
			digStart := p
			for p < len(src) && isDigit(src[p]) {
				p++
			}
			exponent = parseInt64(src[digStart:p])
			if expNeg {
				exponent = -exponent
			}
			pos = p
		}
	}

	r, err := rational.FromDecimalParts(negative, intDigits, fracDigits, exponent)
	if err != nil {
		return value.Value{}, 0, err
	}
	return value.Rational(r), pos, nil
}

func parseInt64(digits string) int64 {
	var n int64
	for i := 0; i < len(digits); i++ {
		n = n*10 + int64(digits[i]-'0')
	}
	return n
}

// scanWordOrReserved resolves the token at pos once string, vector,
// number, and the guard separator have all been ruled out: a reserved
// literal (true/false/nil), a scope-prefixed word reference (@/*/#name),
// or a plain dictionary longest match. The dictionary is authoritative
// for lexical boundaries: when a dictionary match reaches at least as far
// as a reserved-literal match, the dictionary wins, so a user word like
// "truely" is never chopped into Bool(true) plus a stray "ly".
func scanWordOrReserved(src string, pos int, d *dict.Dict) (kind Kind, val value.Value, scope byte, name string, newPos int, ok bool) {
	reservedLen, reservedVal, hasReserved := matchReserved(src, pos)

	if pos < len(src) && isScopeChar(src[pos]) {
		if dictLen, entry, dictOK := d.LongestPrefix(src, pos+1); dictOK {
			return KindWordRef, value.Value{}, src[pos], entry.Name, pos + 1 + dictLen, true
		}
		return 0, value.Value{}, 0, "", 0, false
	}

	dictLen, entry, dictOK := d.LongestPrefix(src, pos)
	if dictOK && (!hasReserved || dictLen >= reservedLen) {
		return KindWordRef, value.Value{}, 0, entry.Name, pos + dictLen, true
	}
	if hasReserved {
		return KindLiteral, reservedVal, 0, "", pos + reservedLen, true
	}
	return 0, value.Value{}, 0, "", 0, false
}

func isScopeChar(ch byte) bool { return ch == '@' || ch == '*' || ch == '#' }

func matchReserved(src string, pos int) (length int, val value.Value, ok bool) {
	rest := src[pos:]
	switch {
	case strings.HasPrefix(rest, "true"):
		return 4, value.BoolVal(true), true
	case strings.HasPrefix(rest, "false"):
		return 5, value.BoolVal(false), true
	case strings.HasPrefix(rest, "nil"):
		return 3, value.Nil, true
	default:
		return 0, value.Value{}, false
	}
}
