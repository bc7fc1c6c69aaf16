package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by EnvironmentConfigSource
const (
	EnvExcludedIDs = "MODLIST_EXCLUDED_IDS"
	EnvOutputPath  = "MODLIST_OUTPUT_PATH"
	EnvAtomicMove  = "MODLIST_ATOMIC_MOVE"
	EnvModsDir     = "MODLIST_MODS_DIR"
	EnvLogLevel    = "MODLIST_LOG_LEVEL"
)

// FileConfigSource loads configuration from a JSON or YAML file
type FileConfigSource struct {
	filePath string
}

// NewFileConfigSource creates a new file configuration source
func NewFileConfigSource(filePath string) *FileConfigSource {
	return &FileConfigSource{
		filePath: filePath,
	}
}

// Load loads configuration from file. A missing file sets nothing.
func (f *FileConfigSource) Load() (*Overlay, error) {
	data, err := os.ReadFile(f.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var overlay Overlay
	if isYAMLPath(f.filePath) {
		err = yaml.Unmarshal(data, &overlay)
	} else {
		err = json.Unmarshal(data, &overlay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", f.filePath, err)
	}

	return &overlay, nil
}

// Priority returns the priority of this source (lower number = higher priority)
func (f *FileConfigSource) Priority() int {
	return 100 // Low priority
}

// Name returns the name of this source
func (f *FileConfigSource) Name() string {
	return "file"
}

// EnvironmentConfigSource loads configuration from MODLIST_* environment variables
type EnvironmentConfigSource struct {
	lookup func(string) (string, bool)
}

// NewEnvironmentConfigSource creates a new environment configuration source
func NewEnvironmentConfigSource() *EnvironmentConfigSource {
	return &EnvironmentConfigSource{lookup: os.LookupEnv}
}

// Load loads configuration from environment variables. An empty
// MODLIST_EXCLUDED_IDS clears the list; other empty values are ignored.
func (e *EnvironmentConfigSource) Load() (*Overlay, error) {
	overlay := &Overlay{}

	if val, ok := e.lookup(EnvExcludedIDs); ok {
		overlay.ExcludedIDs = splitList(val)
	}
	if val, ok := e.lookup(EnvOutputPath); ok && val != "" {
		overlay.OutputPath = &val
	}
	if val, ok := e.lookup(EnvAtomicMove); ok && val != "" {
		atomic, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvAtomicMove, val, err)
		}
		overlay.AtomicMove = &atomic
	}
	if val, ok := e.lookup(EnvModsDir); ok && val != "" {
		overlay.ModsDir = &val
	}
	if val, ok := e.lookup(EnvLogLevel); ok && val != "" {
		level := strings.ToLower(val)
		overlay.LogLevel = &level
	}

	return overlay, nil
}

// Priority returns the priority of this source (lower number = higher priority)
func (e *EnvironmentConfigSource) Priority() int {
	return 10 // High priority
}

// Name returns the name of this source
func (e *EnvironmentConfigSource) Name() string {
	return "environment"
}

func splitList(val string) []string {
	ids := []string{}
	for _, id := range strings.Split(val, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
