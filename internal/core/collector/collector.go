// Package collector turns the host's loaded component list into an ordered,
// filtered snapshot.
package collector

import (
	"context"
	"fmt"
	"slices"

	"modlist.dev/cli/internal/core/component"
	"modlist.dev/cli/internal/core/filtering"
)

// SourceError reports that the host component source could not be listed
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to list components: %v", e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Collect drops excluded components and returns the rest as records sorted
// by name, ignoring case. Ties keep their input order.
func Collect(all []component.Info, excluded component.ExclusionSet) component.Snapshot {
	return collectWith(filtering.NewExclusionFilter(excluded), all)
}

func collectWith(filter filtering.ComponentFilter, all []component.Info) component.Snapshot {
	kept := filtering.Apply(filter, all)

	records := make([]component.Record, len(kept))
	for i, info := range kept {
		records[i] = component.NewRecord(info)
	}

	slices.SortStableFunc(records, func(a, b component.Record) int {
		return component.CompareNames(a.Name, b.Name)
	})

	return component.NewSnapshot(records)
}

// Collector reads from a component source and applies an exclusion filter
type Collector struct {
	source component.Source
	filter *filtering.ExclusionFilter
}

// NewCollector creates a collector over source
func NewCollector(source component.Source, excluded component.ExclusionSet) *Collector {
	return &Collector{
		source: source,
		filter: filtering.NewExclusionFilter(excluded),
	}
}

// Collect lists the source and builds a snapshot from it
func (c *Collector) Collect(ctx context.Context) (component.Snapshot, error) {
	infos, err := c.source.ListComponents(ctx)
	if err != nil {
		return component.Snapshot{}, &SourceError{Err: err}
	}

	return collectWith(c.filter, infos), nil
}

// Statistics returns the filter statistics accumulated by Collect
func (c *Collector) Statistics() filtering.FilterStatistics {
	return c.filter.GetFilterStatistics()
}
