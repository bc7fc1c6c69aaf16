// Package discovery provides component sources for the standalone CLI and
// for hosts that already hold their component list in memory.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/core/component"
)

// Manifest file suffixes recognised by FileSystemSource
var manifestSuffixes = []string{".manifest.json", ".manifest.yaml", ".manifest.yml"}

// Manifest describes one component on disk
type Manifest struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
}

// FileSystemSource lists components by reading manifest files from a directory
type FileSystemSource struct {
	directory string
	logger    ports.LoggingGateway
}

// NewFileSystemSource creates a source scanning directory. A leading ~/ is
// expanded to the user's home directory.
func NewFileSystemSource(directory string, logger ports.LoggingGateway) *FileSystemSource {
	return &FileSystemSource{
		directory: expandPath(directory),
		logger:    logger,
	}
}

// Directory returns the scanned directory
func (s *FileSystemSource) Directory() string {
	return s.directory
}

// ListComponents reads every manifest in file-name order. Unreadable or
// invalid manifests are skipped with a warning; when two manifests declare
// the same id the first one wins. A missing directory lists nothing.
func (s *FileSystemSource) ListComponents(ctx context.Context) ([]component.Info, error) {
	entries, err := os.ReadDir(s.directory)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.LogDebug("Mods directory does not exist", map[string]interface{}{
			"directory": s.directory,
		})
		return []component.Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mods directory: %w", err)
	}

	infos := make([]component.Info, 0, len(entries))
	seen := make(map[string]string, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || !isManifestName(entry.Name()) {
			continue
		}

		path := filepath.Join(s.directory, entry.Name())
		manifest, err := loadManifest(path)
		if err != nil {
			s.logger.LogWarning("Skipping invalid manifest", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		if first, dup := seen[manifest.ID]; dup {
			s.logger.LogWarning("Skipping duplicate component id", map[string]interface{}{
				"id":    manifest.ID,
				"path":  path,
				"first": first,
			})
			continue
		}
		seen[manifest.ID] = path

		infos = append(infos, manifest.Info())
	}

	s.logger.LogDebug("Scanned mods directory", map[string]interface{}{
		"directory":  s.directory,
		"components": len(infos),
	})

	return infos, nil
}

// Info converts the manifest to the host-side entry. A missing display name
// falls back to the id.
func (m Manifest) Info() component.Info {
	name := m.DisplayName
	if strings.TrimSpace(name) == "" {
		name = m.ID
	}

	return component.Info{
		ID:          m.ID,
		DisplayName: name,
		Version:     m.Version,
		Description: m.Description,
	}
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest Manifest
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		err = json.Unmarshal(data, &manifest)
	} else {
		err = yaml.Unmarshal(data, &manifest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if strings.TrimSpace(manifest.ID) == "" {
		return nil, fmt.Errorf("manifest has no id")
	}

	return &manifest, nil
}

func isManifestName(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range manifestSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
