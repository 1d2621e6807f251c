// Package persist implements Lycoris's dictionary save/load format: the
// ordered list of user dictionary entries, each as {name, body, color},
// serialized with goccy/go-yaml so the blob stays human-diffable and keeps
// source form rather than internal structure. Built-ins and the stack are
// never persisted.
package persist

import (
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/masamoto1982/Lycoris/internal/dict"
	"github.com/masamoto1982/Lycoris/internal/lexer"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// entryDoc is one YAML document in a saved dictionary blob.
type entryDoc struct {
	Name  string `yaml:"name" json:"name"`
	Body  string `yaml:"body" json:"body"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

const documentSeparator = "\n---\n"

// Serialize renders d's user entries, in definition order, as a YAML blob:
// one document per entry, separated by "---", rather than a single
// document holding a sequence. That keeps Deserialize able to isolate a
// corrupt document to the one entry it belongs to.
func Serialize(d *dict.Dict) ([]byte, error) {
	entries := d.UserEntries()
	docs := make([]string, 0, len(entries))
	for _, e := range entries {
		b, err := yaml.Marshal(entryDoc{Name: e.Name, Body: e.Source, Color: e.Color})
		if err != nil {
			return nil, err
		}
		docs = append(docs, strings.TrimRight(string(b), "\n"))
	}
	return []byte(strings.Join(docs, documentSeparator)), nil
}

// Deserialize installs every entry in blob into d. The blob is split into
// its individual "---"-separated documents and each is unmarshaled on its
// own, so a document that is malformed YAML (from truncation or disk
// corruption) is reported and skipped without losing the documents around
// it. Entries
// install in the blob's own order, so an entry whose body quotes an earlier
// entry's name resolves correctly (the earlier entry is already bound by
// the time the later one is tokenized). An entry whose body fails to
// re-tokenize, or fails to parse into a single Vector, is likewise skipped
// and reported while the rest still install.
func Deserialize(blob []byte, d *dict.Dict) ([]error, error) {
	var corrupt []error
	for _, raw := range strings.Split(string(blob), documentSeparator) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		var doc entryDoc
		if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
			corrupt = append(corrupt, lycerrors.NewCorruptStateError("<document>", err.Error()))
			continue
		}

		body, err := parseStoredBody(doc.Body, d)
		if err != nil {
			corrupt = append(corrupt, lycerrors.NewCorruptStateError(doc.Name, err.Error()))
			continue
		}
		if err := d.Define(doc.Name, body, doc.Body, doc.Color); err != nil {
			corrupt = append(corrupt, lycerrors.NewCorruptStateError(doc.Name, err.Error()))
			continue
		}
	}
	return corrupt, nil
}

// parseStoredBody re-tokenizes a stored body string, which must consist of
// exactly one Vector literal (the form `def` always produces).
func parseStoredBody(body string, d *dict.Dict) ([]value.Value, error) {
	toks, err := lexer.Tokenize(body, d)
	if err != nil {
		return nil, err
	}
	if len(toks) != 1 || toks[0].Kind != lexer.KindLiteral || toks[0].Val.Kind != value.KindVector {
		return nil, lycerrors.NewSyntaxError("stored body is not a single vector literal", lycerrors.NoOffset)
	}
	return toks[0].Val.Vec, nil
}
