package filtering

import (
	"fmt"
	"sync"

	"modlist.dev/cli/internal/core/component"
)

// ComponentFilter decides which host components make it into a snapshot
type ComponentFilter interface {
	ShouldInclude(info component.Info) bool
	GetFilterReason(info component.Info) string
	GetFilterStatistics() FilterStatistics
}

// FilterStatistics tracks filtering statistics
type FilterStatistics struct {
	TotalEvaluated int `json:"total_evaluated"`
	TotalIncluded  int `json:"total_included"`
	TotalExcluded  int `json:"total_excluded"`
}

// ExclusionFilter drops components whose id is in the configured exclusion set
type ExclusionFilter struct {
	excluded   component.ExclusionSet
	statistics FilterStatistics
	statsMu    sync.Mutex
}

// NewExclusionFilter creates a filter over the given exclusion set
func NewExclusionFilter(excluded component.ExclusionSet) *ExclusionFilter {
	return &ExclusionFilter{excluded: excluded}
}

// ShouldInclude reports whether info survives the exclusion set
func (f *ExclusionFilter) ShouldInclude(info component.Info) bool {
	include := !f.excluded.Contains(info.ID)

	f.statsMu.Lock()
	f.statistics.TotalEvaluated++
	if include {
		f.statistics.TotalIncluded++
	} else {
		f.statistics.TotalExcluded++
	}
	f.statsMu.Unlock()

	return include
}

// GetFilterReason returns the reason a component was dropped (for debugging)
func (f *ExclusionFilter) GetFilterReason(info component.Info) string {
	if f.excluded.Contains(info.ID) {
		return fmt.Sprintf("component %s is in the exclusion list", info.ID)
	}
	return "component passed all filters"
}

// GetFilterStatistics returns current filtering statistics
func (f *ExclusionFilter) GetFilterStatistics() FilterStatistics {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()
	return f.statistics
}

// Apply keeps the entries accepted by filter, preserving input order
func Apply(filter ComponentFilter, infos []component.Info) []component.Info {
	kept := make([]component.Info, 0, len(infos))
	for _, info := range infos {
		if filter.ShouldInclude(info) {
			kept = append(kept, info)
		}
	}
	return kept
}
