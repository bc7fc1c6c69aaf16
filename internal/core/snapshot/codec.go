// Package snapshot defines the on-disk document published for external
// tools. The layout is a compatibility contract: a top-level "mods" array
// whose entries carry id, name, version and summary in that order.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"modlist.dev/cli/internal/core/component"
)

// document is the wire shape of a published snapshot
type document struct {
	Mods []entry `json:"mods"`
}

// entry field order is the serialized field order
type entry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}

// Encode serializes a snapshot as indented JSON terminated by a newline.
// String content is never rejected: control characters are escaped and
// invalid UTF-8 is replaced with U+FFFD. Decode(Encode(s)) equals s only
// when every field of s is valid UTF-8.
func Encode(snap component.Snapshot) ([]byte, error) {
	doc := document{Mods: make([]entry, 0, snap.Len())}
	for _, r := range snap.Records() {
		doc.Mods = append(doc.Mods, entry{
			ID:      r.ID,
			Name:    r.Name,
			Version: r.Version,
			Summary: r.Summary,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode parses a published document back into a snapshot. Records are
// kept in document order.
func Decode(r io.Reader) (component.Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return component.Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	records := make([]component.Record, len(doc.Mods))
	for i, m := range doc.Mods {
		records[i] = component.Record{
			ID:      m.ID,
			Name:    m.Name,
			Version: m.Version,
			Summary: m.Summary,
		}
	}

	return component.NewSnapshot(records), nil
}

// DecodeBytes is Decode over an in-memory document
func DecodeBytes(data []byte) (component.Snapshot, error) {
	return Decode(bytes.NewReader(data))
}
