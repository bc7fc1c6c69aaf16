package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/core/collector"
	"modlist.dev/cli/internal/core/component"
)

// workerName identifies the export goroutine in logs
const workerName = "modlist-writer"

// SnapshotPublisher persists a snapshot at a target path
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap component.Snapshot, targetPath string, atomicMove bool) error
}

// ExportResult summarizes a completed export run
type ExportResult struct {
	OutputPath string        `json:"output_path"`
	Exported   int           `json:"exported"`
	Excluded   int           `json:"excluded"`
	AtomicMove bool          `json:"atomic_move"`
	Duration   time.Duration `json:"duration"`
}

// ExportService collects the loaded components and publishes them. A
// service runs its background export at most once.
type ExportService struct {
	source    component.Source
	publisher SnapshotPublisher
	config    ports.Configuration
	logger    ports.LoggingGateway

	once sync.Once
	task *ExportTask
}

// NewExportService creates a new export service. The configuration is
// copied; later changes to config do not affect the service.
func NewExportService(
	source component.Source,
	publisher SnapshotPublisher,
	config *ports.Configuration,
	logger ports.LoggingGateway,
) *ExportService {
	cfg := *config
	cfg.ExcludedIDs = append([]string(nil), config.ExcludedIDs...)

	return &ExportService{
		source:    source,
		publisher: publisher,
		config:    cfg,
		logger:    logger,
	}
}

// OnInitializationComplete is the host's startup-complete hook. It starts
// the export in the background and returns immediately. Further calls
// return the task of the first call without starting another run.
//
// The run ignores cancellation of ctx: once started it completes or fails.
func (s *ExportService) OnInitializationComplete(ctx context.Context) *ExportTask {
	s.once.Do(func() {
		s.task = newExportTask()
		workerCtx := context.WithoutCancel(ctx)

		s.logger.LogDebug("Starting background export", map[string]interface{}{
			"worker": workerName,
		})
		go s.task.run(func() (ExportResult, error) {
			return s.Export(workerCtx)
		}, func(err error) {
			s.logger.LogError(err, "Failed to write mod list", s.fields("panic"))
		})
	})

	return s.task
}

// Export runs collection and publication synchronously on the caller's
// goroutine
func (s *ExportService) Export(ctx context.Context) (ExportResult, error) {
	start := time.Now()
	result := ExportResult{
		OutputPath: s.config.OutputPath,
		AtomicMove: s.config.AtomicMove,
	}

	c := s.newCollector()
	snap, err := c.Collect(ctx)
	if err != nil {
		s.logger.LogError(err, "Failed to collect mod list", s.fields("collect"))
		return result, fmt.Errorf("failed to collect components: %w", err)
	}

	stats := c.Statistics()
	result.Exported = snap.Len()
	result.Excluded = stats.TotalExcluded

	s.logger.LogDebug("Collected components", map[string]interface{}{
		"worker":   workerName,
		"total":    stats.TotalEvaluated,
		"exported": result.Exported,
		"excluded": result.Excluded,
	})

	if err := s.publisher.Publish(ctx, snap, s.config.OutputPath, s.config.AtomicMove); err != nil {
		s.logger.LogError(err, "Failed to write mod list", s.fields(phaseOf(err)))
		return result, err
	}

	result.Duration = time.Since(start)
	s.logger.LogInfo("Mod list written", map[string]interface{}{
		"worker":      workerName,
		"output_path": result.OutputPath,
		"exported":    result.Exported,
		"excluded":    result.Excluded,
		"atomic_move": result.AtomicMove,
		"duration_ms": result.Duration.Milliseconds(),
	})

	return result, nil
}

// Preview collects the snapshot an export would publish without writing it
func (s *ExportService) Preview(ctx context.Context) (component.Snapshot, error) {
	snap, err := s.newCollector().Collect(ctx)
	if err != nil {
		return component.Snapshot{}, fmt.Errorf("failed to collect components: %w", err)
	}
	return snap, nil
}

// Configuration returns the configuration the service was built with
func (s *ExportService) Configuration() ports.Configuration {
	return s.config
}

func (s *ExportService) newCollector() *collector.Collector {
	return collector.NewCollector(s.source, component.NewExclusionSet(s.config.ExcludedIDs...))
}

func (s *ExportService) fields(phase string) map[string]interface{} {
	return map[string]interface{}{
		"worker":      workerName,
		"phase":       phase,
		"output_path": s.config.OutputPath,
		"atomic_move": s.config.AtomicMove,
	}
}

// phaseOf reads the failed protocol phase from publisher errors
func phaseOf(err error) string {
	var phased interface{ Phase() string }
	if errors.As(err, &phased) {
		return phased.Phase()
	}
	return "publish"
}
