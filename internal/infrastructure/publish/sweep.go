package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var tempNamePattern = regexp.MustCompile(`^[0-9a-f]{32}\.json$`)

// IsTempName reports whether name looks like a temporary file left by Publish
func IsTempName(name string) bool {
	return tempNamePattern.MatchString(name)
}

// SweepOptions controls which leftovers Sweep removes
type SweepOptions struct {
	// OlderThan protects files a concurrent run may still be writing
	OlderThan time.Duration
	DryRun    bool
	Now       func() time.Time
}

// Sweep removes temporary files left in targetPath's directory by
// interrupted publishes. The target itself is never touched. It returns the
// paths removed, or that would be removed in dry-run mode.
func Sweep(targetPath string, opts SweepOptions) ([]string, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	cutoff := now().Add(-opts.OlderThan)

	dir := filepath.Dir(targetPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	targetName := filepath.Base(targetPath)
	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == targetName || !IsTempName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !opts.DryRun {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return removed, fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}
		removed = append(removed, path)
	}

	return removed, nil
}
