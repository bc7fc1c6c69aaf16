package ports

// ConfigurationRepository defines the interface for configuration persistence
type ConfigurationRepository interface {
	// Load retrieves the current configuration
	Load() (*Configuration, error)

	// Save persists the configuration
	Save(config *Configuration) error

	// LoadDefault returns the default configuration
	LoadDefault() *Configuration

	// Validate validates the configuration
	Validate(config *Configuration) error

	// GetConfigPath returns the path to the configuration file
	GetConfigPath() string
}

// Configuration represents the application configuration
type Configuration struct {
	// ExcludedIDs lists component ids that are never exported
	ExcludedIDs []string `json:"excluded_ids" yaml:"excluded_ids"`

	// OutputPath is where the snapshot is published
	OutputPath string `json:"output_path" yaml:"output_path"`

	// AtomicMove requests an atomic rename when publishing. When false a
	// cross-device move deletes the previous file and copies, so readers may
	// briefly see no file.
	AtomicMove bool `json:"atomic_move" yaml:"atomic_move"`

	// ModsDir is scanned for component manifests by the standalone CLI
	ModsDir string `json:"mods_dir" yaml:"mods_dir"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}
