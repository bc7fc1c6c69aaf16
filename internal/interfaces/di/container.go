package di

import (
	"fmt"
	"io"
	"log"
	"os"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/core/component"
	"modlist.dev/cli/internal/infrastructure/config"
	"modlist.dev/cli/internal/infrastructure/discovery"
	"modlist.dev/cli/internal/infrastructure/publish"
	"modlist.dev/cli/internal/interfaces/cli"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	ConfigRepo *config.CompositeConfigRepository

	// Infrastructure
	Publisher *publish.Publisher

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger  *log.Logger
	Logging *LoggingGatewayAdapter
}

// NewContainer creates and configures the dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWithOutput(os.Stderr)
}

// NewContainerWithOutput creates a container whose log output goes to w
func NewContainerWithOutput(w io.Writer) (*Container, error) {
	logger := log.New(w, "[modlist] ", log.LstdFlags)
	container := &Container{
		Logger:  logger,
		Logging: NewLoggingGatewayAdapter(logger, ports.LogLevelInfo),
	}

	if err := container.initializeComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents() error {
	c.ConfigRepo = config.NewCompositeConfigRepository()
	c.Publisher = publish.NewPublisher()

	c.CLIContainer = &cli.CLIContainer{
		ConfigRepo:    c.ConfigRepo,
		Publisher:     c.Publisher,
		Logger:        c.Logging,
		NewSource:     c.newSource,
		MainContainer: c, // Reference to self for override methods
	}

	c.Logging.LogDebug("Dependency injection container initialized", map[string]interface{}{
		"config_path": c.ConfigRepo.GetConfigPath(),
	})
	return nil
}

// newSource builds the component source for a mods directory
func (c *Container) newSource(modsDir string) component.Source {
	return discovery.NewFileSystemSource(modsDir, c.Logging)
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// UseConfigFile switches the configuration repository to an explicit file
func (c *Container) UseConfigFile(path string) error {
	if path == "" {
		return fmt.Errorf("config file path cannot be empty")
	}

	c.ConfigRepo = config.NewCompositeConfigRepositoryWithPath(path)
	c.CLIContainer.ConfigRepo = c.ConfigRepo

	c.Logging.LogDebug("Using configuration file", map[string]interface{}{"path": path})
	return nil
}

// ApplyLogLevel sets the log level from its configured name
func (c *Container) ApplyLogLevel(level string) error {
	parsed, ok := ports.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("unknown log level: %s", level)
	}

	c.Logging.SetLogLevel(parsed)
	return nil
}

// GetVersion returns version information
func (c *Container) GetVersion() map[string]string {
	return map[string]string{
		"version":    cli.Version,
		"build_time": cli.BuildTime,
	}
}
