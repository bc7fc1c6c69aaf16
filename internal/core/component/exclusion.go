package component

import "sort"

// ExclusionSet holds the ids of components that must never be exported.
// Matching is exact and case-sensitive.
type ExclusionSet struct {
	ids map[string]struct{}
}

// NewExclusionSet creates a set from the given ids. Empty ids are ignored.
func NewExclusionSet(ids ...string) ExclusionSet {
	set := ExclusionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		set.ids[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is excluded
func (s ExclusionSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of excluded ids
func (s ExclusionSet) Len() int {
	return len(s.ids)
}

// IDs returns the excluded ids in sorted order
func (s ExclusionSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
