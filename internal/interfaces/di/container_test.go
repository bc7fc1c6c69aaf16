package di

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/infrastructure/config"
)

func newTestContainer(t *testing.T) (*Container, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, filepath.Join(t.TempDir(), "config.json"))

	var out bytes.Buffer
	container, err := NewContainerWithOutput(&out)
	require.NoError(t, err)
	return container, &out
}

func TestNewContainer_WiresCLIContainer(t *testing.T) {
	container, _ := newTestContainer(t)

	cliContainer := container.GetCLIContainer()
	require.NotNil(t, cliContainer)
	assert.Same(t, container.ConfigRepo, cliContainer.ConfigRepo)
	assert.Same(t, container.Publisher, cliContainer.Publisher)
	assert.Same(t, container.Logging, cliContainer.Logger)
	assert.Same(t, container, cliContainer.MainContainer)
}

func TestContainer_NewSourceScansModsDir(t *testing.T) {
	container, _ := newTestContainer(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jei.manifest.json"),
		[]byte(`{"id": "jei", "displayName": "Just Enough Items"}`), 0o644))

	infos, err := container.CLIContainer.NewSource(dir).ListComponents(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "jei", infos[0].ID)
}

func TestContainer_UseConfigFile(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "ExplicitPath", path: "custom.yaml"},
		{name: "EmptyPath", path: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, _ := newTestContainer(t)
			path := tt.path
			if path != "" {
				path = filepath.Join(t.TempDir(), path)
			}

			err := container.UseConfigFile(path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, container.ConfigRepo.GetConfigPath())
			assert.Equal(t, path, container.CLIContainer.ConfigRepo.GetConfigPath())
		})
	}
}

func TestContainer_ApplyLogLevel(t *testing.T) {
	container, _ := newTestContainer(t)

	require.NoError(t, container.ApplyLogLevel("debug"))
	assert.Equal(t, ports.LogLevelDebug, container.Logging.GetLogLevel())

	assert.Error(t, container.ApplyLogLevel("loud"))
	assert.Equal(t, ports.LogLevelDebug, container.Logging.GetLogLevel())
}

func TestLoggingGatewayAdapter_FiltersByLevel(t *testing.T) {
	var out bytes.Buffer
	adapter := NewLoggingGatewayAdapter(log.New(&out, "", 0), ports.LogLevelWarn)

	adapter.LogDebug("debug message", nil)
	adapter.LogInfo("info message", nil)
	adapter.LogWarning("warning message", map[string]interface{}{"path": "a.json"})
	adapter.LogError(errors.New("boom"), "error message", nil)

	assert.Equal(t,
		"WARNING: warning message (fields: map[path:a.json])\nERROR: error message: boom\n",
		out.String())

	out.Reset()
	adapter.SetLogLevel(ports.LogLevelDebug)
	adapter.Log(ports.LogLevelDebug, "now visible", nil)
	assert.Equal(t, "DEBUG: now visible\n", out.String())
}

func TestGetVersion(t *testing.T) {
	container, _ := newTestContainer(t)

	version := container.GetVersion()
	assert.Contains(t, version, "version")
	assert.Contains(t, version, "build_time")
}
