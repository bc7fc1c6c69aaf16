package component

import (
	"context"
	"strings"
)

// Info is a loaded component as the host runtime describes it
type Info struct {
	ID          string
	DisplayName string
	Version     string
	Description string
}

// Source is the host capability that enumerates currently loaded components
type Source interface {
	ListComponents(ctx context.Context) ([]Info, error)
}

// SourceFunc adapts a plain function to the Source interface
type SourceFunc func(ctx context.Context) ([]Info, error)

// ListComponents calls f(ctx)
func (f SourceFunc) ListComponents(ctx context.Context) ([]Info, error) {
	return f(ctx)
}

// Record is the exported view of a single component. Records are values:
// they are copied out of the host registry at collection time and never
// mutated afterwards.
type Record struct {
	ID      string
	Name    string
	Version string
	Summary string
}

// NewRecord copies the exported fields of a host entry. The description is
// trimmed because host metadata frequently carries trailing newlines.
func NewRecord(info Info) Record {
	return Record{
		ID:      info.ID,
		Name:    info.DisplayName,
		Version: info.Version,
		Summary: strings.TrimSpace(info.Description),
	}
}
