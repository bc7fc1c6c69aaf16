package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/infrastructure/publish"
)

// ConfigFileEnv names the environment variable that overrides the config file location
const ConfigFileEnv = "MODLIST_CONFIG_FILE"

// CompositeConfigRepository implements the ConfigurationRepository interface
type CompositeConfigRepository struct {
	sources    []ConfigSource
	cache      *ConfigCache
	configPath string
	mu         sync.Mutex
}

// ConfigSource defines the interface for configuration sources
type ConfigSource interface {
	Load() (*Overlay, error)
	Priority() int
	Name() string
}

// Overlay is a partial configuration. Nil fields are not set by the source
// and leave lower priority values in place.
type Overlay struct {
	ExcludedIDs []string `json:"excluded_ids,omitempty" yaml:"excluded_ids,omitempty"`
	OutputPath  *string  `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	AtomicMove  *bool    `json:"atomic_move,omitempty" yaml:"atomic_move,omitempty"`
	ModsDir     *string  `json:"mods_dir,omitempty" yaml:"mods_dir,omitempty"`
	LogLevel    *string  `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// ConfigCache provides caching for configuration
type ConfigCache struct {
	config    *ports.Configuration
	timestamp time.Time
	ttl       time.Duration
}

// NewCompositeConfigRepository creates a repository reading the file named
// by MODLIST_CONFIG_FILE, or the default location when it is unset
func NewCompositeConfigRepository() *CompositeConfigRepository {
	configPath := os.Getenv(ConfigFileEnv)
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	return NewCompositeConfigRepositoryWithPath(configPath)
}

// NewCompositeConfigRepositoryWithPath creates a repository for an explicit config file
func NewCompositeConfigRepositoryWithPath(configPath string) *CompositeConfigRepository {
	repo := &CompositeConfigRepository{
		sources: make([]ConfigSource, 0),
		cache: &ConfigCache{
			ttl: 5 * time.Minute,
		},
		configPath: configPath,
	}

	repo.AddSource(NewEnvironmentConfigSource())
	repo.AddSource(NewFileConfigSource(repo.configPath))

	return repo
}

// AddSource adds a configuration source
func (r *CompositeConfigRepository) AddSource(source ConfigSource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources = append(r.sources, source)
	r.cache.config = nil
}

// Load retrieves the current configuration
func (r *CompositeConfigRepository) Load() (*ports.Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache.config != nil && time.Since(r.cache.timestamp) < r.cache.ttl {
		return cloneConfiguration(r.cache.config), nil
	}

	config := r.LoadDefault()

	// Lower number = higher priority, so apply from the highest number down
	sortedSources := make([]ConfigSource, len(r.sources))
	copy(sortedSources, r.sources)
	sort.SliceStable(sortedSources, func(i, j int) bool {
		return sortedSources[i].Priority() > sortedSources[j].Priority()
	})

	for _, source := range sortedSources {
		overlay, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", source.Name(), err)
		}

		config = mergeOverlay(config, overlay)
	}

	if err := r.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	r.cache.config = config
	r.cache.timestamp = time.Now()

	return cloneConfiguration(config), nil
}

// Save persists the configuration. The file is replaced atomically and its
// format follows the file extension.
func (r *CompositeConfigRepository) Save(config *ports.Configuration) error {
	if err := r.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshalConfiguration(r.configPath, config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := publish.NewPublisher().PublishBytes(context.Background(), data, r.configPath, true); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	r.mu.Lock()
	r.cache.config = nil
	r.mu.Unlock()

	return nil
}

// LoadDefault returns the default configuration
func (r *CompositeConfigRepository) LoadDefault() *ports.Configuration {
	return DefaultConfiguration()
}

// DefaultConfiguration returns the built-in defaults
func DefaultConfiguration() *ports.Configuration {
	return &ports.Configuration{
		ExcludedIDs: []string{},
		OutputPath:  "modlist.json",
		AtomicMove:  true,
		ModsDir:     "mods",
		LogLevel:    string(ports.LogLevelInfo),
	}
}

// Validate validates the configuration
func (r *CompositeConfigRepository) Validate(config *ports.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if strings.TrimSpace(config.OutputPath) == "" {
		return fmt.Errorf("output path is required")
	}

	if strings.HasSuffix(config.OutputPath, "/") || strings.HasSuffix(config.OutputPath, string(os.PathSeparator)) {
		return fmt.Errorf("output path %q must name a file, not a directory", config.OutputPath)
	}

	for i, id := range config.ExcludedIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("excluded id at position %d is empty", i)
		}
	}

	if _, ok := ports.ParseLogLevel(config.LogLevel); !ok {
		return fmt.Errorf("log level must be one of: debug, info, warn, error")
	}

	return nil
}

// GetConfigPath returns the path to the configuration file
func (r *CompositeConfigRepository) GetConfigPath() string {
	return r.configPath
}

// mergeOverlay applies the fields set in overlay on top of target
func mergeOverlay(target *ports.Configuration, overlay *Overlay) *ports.Configuration {
	if overlay == nil {
		return target
	}

	result := *target

	if overlay.ExcludedIDs != nil {
		result.ExcludedIDs = append([]string{}, overlay.ExcludedIDs...)
	}
	if overlay.OutputPath != nil {
		result.OutputPath = *overlay.OutputPath
	}
	if overlay.AtomicMove != nil {
		result.AtomicMove = *overlay.AtomicMove
	}
	if overlay.ModsDir != nil {
		result.ModsDir = *overlay.ModsDir
	}
	if overlay.LogLevel != nil {
		result.LogLevel = *overlay.LogLevel
	}

	return &result
}

func cloneConfiguration(config *ports.Configuration) *ports.Configuration {
	result := *config
	result.ExcludedIDs = append([]string{}, config.ExcludedIDs...)
	return &result
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func marshalConfiguration(path string, config *ports.Configuration) ([]byte, error) {
	if isYAMLPath(path) {
		return yaml.Marshal(config)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// getDefaultConfigPath returns the default configuration file path
func getDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		return ".modlist-config.json"
	}

	return filepath.Join(homeDir, ".config", "modlist", "config.json")
}
