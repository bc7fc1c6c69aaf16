package component

import "strings"

// Snapshot is the filtered, ordered list of components captured by one run
type Snapshot struct {
	records []Record
}

// NewSnapshot builds a snapshot over a private copy of records. Callers are
// responsible for ordering; use the collector to get a sorted snapshot.
func NewSnapshot(records []Record) Snapshot {
	cp := make([]Record, len(records))
	copy(cp, records)
	return Snapshot{records: cp}
}

// Records returns a copy of the records in snapshot order
func (s Snapshot) Records() []Record {
	cp := make([]Record, len(s.records))
	copy(cp, s.records)
	return cp
}

// Len returns the number of records
func (s Snapshot) Len() int {
	return len(s.records)
}

// At returns the record at index i
func (s Snapshot) At(i int) Record {
	return s.records[i]
}

// IDs returns the component ids in snapshot order
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.records))
	for i, r := range s.records {
		ids[i] = r.ID
	}
	return ids
}

// Equal reports whether both snapshots hold the same records in the same order
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.records) != len(other.records) {
		return false
	}
	for i := range s.records {
		if s.records[i] != other.records[i] {
			return false
		}
	}
	return true
}

// CompareNames orders two display names case-insensitively
func CompareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
