package discovery

import (
	"context"
	"sync"

	"modlist.dev/cli/internal/core/component"
)

// StaticSource is an in-memory registry. Embedding hosts register what they
// loaded and hand the source to the exporter.
type StaticSource struct {
	mu    sync.RWMutex
	infos []component.Info
}

// NewStaticSource creates a registry holding infos in the given order
func NewStaticSource(infos ...component.Info) *StaticSource {
	return &StaticSource{infos: append([]component.Info(nil), infos...)}
}

// Register appends components to the registry
func (s *StaticSource) Register(infos ...component.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, infos...)
}

// ListComponents returns a copy of the registered components
func (s *StaticSource) ListComponents(ctx context.Context) ([]component.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]component.Info{}, s.infos...), nil
}
