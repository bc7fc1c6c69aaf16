package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modlist.dev/cli/internal/application/ports"
)

// ExportCommand carries per-invocation overrides for an export run. Zero
// values leave the configured setting in place.
type ExportCommand struct {
	OutputPath  string   `json:"output_path,omitempty"`
	ModsDir     string   `json:"mods_dir,omitempty"`
	ExcludedIDs []string `json:"excluded_ids,omitempty"`
	AtomicMove  *bool    `json:"atomic_move,omitempty"`
}

// GetType returns the command type
func (c *ExportCommand) GetType() string {
	return "export"
}

// Validate validates the export command
func (c *ExportCommand) Validate() error {
	if c.OutputPath != "" && strings.HasSuffix(c.OutputPath, string(os.PathSeparator)) {
		return NewValidationError(fmt.Sprintf("output path %q must name a file", c.OutputPath))
	}

	for _, id := range c.ExcludedIDs {
		if strings.TrimSpace(id) == "" {
			return NewValidationError("excluded ids cannot be empty")
		}
	}

	return nil
}

// Apply returns a copy of config with the command's overrides applied.
// Excluded ids are added to the configured ones.
func (c *ExportCommand) Apply(config *ports.Configuration) *ports.Configuration {
	result := *config
	result.ExcludedIDs = append([]string(nil), config.ExcludedIDs...)

	if c.OutputPath != "" {
		result.OutputPath = filepath.Clean(c.OutputPath)
	}
	if c.ModsDir != "" {
		result.ModsDir = c.ModsDir
	}
	for _, id := range c.ExcludedIDs {
		result.ExcludedIDs = append(result.ExcludedIDs, strings.TrimSpace(id))
	}
	if c.AtomicMove != nil {
		result.AtomicMove = *c.AtomicMove
	}

	return &result
}
