// Package ports is the embedding surface for host runtimes. A host hands
// its loaded components to NewExporter and calls OnInitializationComplete
// once its startup is done; the list is published in the background.
package ports

import (
	"context"
	"log"
	"os"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/application/services"
	"modlist.dev/cli/internal/core/component"
	"modlist.dev/cli/internal/infrastructure/config"
	"modlist.dev/cli/internal/infrastructure/discovery"
	"modlist.dev/cli/internal/infrastructure/publish"
	"modlist.dev/cli/internal/interfaces/di"
)

// Re-export the types a host needs
type Source = component.Source
type SourceFunc = component.SourceFunc
type ComponentInfo = component.Info
type Configuration = ports.Configuration
type LoggingGateway = ports.LoggingGateway
type Exporter = services.ExportService
type ExportTask = services.ExportTask
type ExportResult = services.ExportResult

// StaticSource is an in-memory component registry
type StaticSource = discovery.StaticSource

// NewStaticSource creates a registry holding infos in the given order
func NewStaticSource(infos ...ComponentInfo) *StaticSource {
	return discovery.NewStaticSource(infos...)
}

// DefaultConfiguration returns the built-in defaults
func DefaultConfiguration() *Configuration {
	return config.DefaultConfiguration()
}

// NewExporter creates an exporter publishing source's components with
// config. A nil logger logs to stderr at the configured level.
func NewExporter(source Source, config *Configuration, logger LoggingGateway) *Exporter {
	if logger == nil {
		level, _ := ports.ParseLogLevel(config.LogLevel)
		logger = di.NewLoggingGatewayAdapter(log.New(os.Stderr, "[modlist] ", log.LstdFlags), level)
	}

	return services.NewExportService(source, publish.NewPublisher(), config, logger)
}

// ExportOnInitialization is the one-call form for hosts: it starts the
// background export and returns its task
func ExportOnInitialization(ctx context.Context, source Source, config *Configuration) *ExportTask {
	return NewExporter(source, config, nil).OnInitializationComplete(ctx)
}
