package persist

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/masamoto1982/Lycoris/internal/dict"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
)

// EntriesToJSON renders d's user entries as a JSON array, for hosts that
// want to locate-and-patch a single field (e.g. recolor one word) without
// a full YAML decode/mutate/encode round trip. This is the one corner of
// persistence where gjson/sjson's raw-text-path editing suits the task
// better than goccy/go-yaml's decode-into-struct model (see DESIGN.md).
func EntriesToJSON(d *dict.Dict) (string, error) {
	entries := d.UserEntries()
	docs := make([]entryDoc, len(entries))
	for i, e := range entries {
		docs[i] = entryDoc{Name: e.Name, Body: e.Source, Color: e.Color}
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PatchEntryField edits a single field of the named entry within blob (as
// produced by EntriesToJSON) and returns the patched JSON text. The result
// is still a JSON array of entries; Deserialize does not accept it as-is,
// since it reads the "---"-separated per-entry YAML documents Serialize
// writes.
func PatchEntryField(blob, name, field, newValue string) (string, error) {
	parsed := gjson.Parse(blob)
	if !parsed.IsArray() {
		return "", lycerrors.NewCorruptStateError("<document>", "patch target is not a JSON array of entries")
	}

	idx := -1
	for i, entry := range parsed.Array() {
		if entry.Get("name").String() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", lycerrors.NewNotFoundError(name)
	}

	path := fmt.Sprintf("%d.%s", idx, field)
	return sjson.Set(blob, path, newValue)
}
