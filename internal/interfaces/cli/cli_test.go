package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modlist.dev/cli/internal/application/commands"
	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/application/services"
	"modlist.dev/cli/internal/core/component"
	"modlist.dev/cli/internal/infrastructure/config"
	"modlist.dev/cli/internal/infrastructure/discovery"
	"modlist.dev/cli/internal/infrastructure/publish"
	"modlist.dev/cli/internal/testutil"
)

const expectedDocument = `{
  "mods": [
    {
      "id": "appleskin",
      "name": "AppleSkin",
      "version": "3.0.5",
      "summary": "Food value tooltips"
    },
    {
      "id": "jei",
      "name": "Just Enough Items",
      "version": "19.21.0.247",
      "summary": "JEI is an item and recipe viewing mod."
    }
  ]
}
`

type testEnv struct {
	container  *CLIContainer
	logger     *testutil.RecordingLogger
	dir        string
	outputPath string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	modsDir := filepath.Join(dir, "mods")
	outDir := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(modsDir, 0o755))
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	manifests := map[string]string{
		"jei.manifest.json": `{"id": "jei", "displayName": "Just Enough Items", "version": "19.21.0.247",
  "description": "  JEI is an item and recipe viewing mod.\n"}`,
		"appleskin.manifest.yaml": "id: appleskin\ndisplayName: AppleSkin\nversion: 3.0.5\ndescription: Food value tooltips\n",
		"minecraft.manifest.json": `{"id": "minecraft", "displayName": "Minecraft", "version": "1.21.1"}`,
	}
	for name, content := range manifests {
		require.NoError(t, os.WriteFile(filepath.Join(modsDir, name), []byte(content), 0o644))
	}

	env := &testEnv{
		logger:     testutil.NewRecordingLogger(),
		dir:        dir,
		outputPath: filepath.Join(outDir, "modlist.json"),
		configPath: filepath.Join(dir, "config.json"),
	}

	configJSON, err := json.Marshal(map[string]interface{}{
		"excluded_ids": []string{"minecraft"},
		"output_path":  env.outputPath,
		"mods_dir":     modsDir,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.configPath, configJSON, 0o644))

	env.container = &CLIContainer{
		ConfigRepo: config.NewCompositeConfigRepositoryWithPath(env.configPath),
		Publisher:  publish.NewPublisher(),
		Logger:     env.logger,
		NewSource: func(modsDir string) component.Source {
			return discovery.NewFileSystemSource(modsDir, env.logger)
		},
	}
	return env
}

func (e *testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand(e.container)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand_PublishesFilteredSortedList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "export")
	require.NoError(t, err, env.logger.String())

	data, err := os.ReadFile(env.outputPath)
	require.NoError(t, err)
	assert.Equal(t, expectedDocument, string(data))

	assert.Contains(t, out, "Mod list written")
	assert.Contains(t, out, "Exported: 2")
	assert.Contains(t, out, "Excluded: 1")
}

func TestExportCommand_FlagOverrides(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(env.dir, "other.json")

	out, err := env.execute(t, "export", "--output", other, "--exclude", "jei", "--atomic=false", "--json")
	require.NoError(t, err, env.logger.String())

	var envelope struct {
		Success  bool                   `json:"success"`
		Command  string                 `json:"command"`
		Data     services.ExportResult  `json:"data"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "export", envelope.Command)
	assert.Equal(t, []interface{}{"minecraft", "jei"}, envelope.Metadata["excluded_ids"])

	result := envelope.Data
	assert.Equal(t, other, result.OutputPath)
	assert.Equal(t, 1, result.Exported)
	assert.Equal(t, 2, result.Excluded)
	assert.False(t, result.AtomicMove)

	assert.NoFileExists(t, env.outputPath)
	data, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "appleskin"`)
	assert.NotContains(t, string(data), `"id": "jei"`)
}

func TestExportCommand_RejectsDirectoryOutput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "export", "--output", env.dir+string(os.PathSeparator))
	require.Error(t, err)

	var cmdErr commands.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, commands.ErrCodeValidation, cmdErr.Code)
}

func TestExportCommand_JSONReportsFailures(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"InvalidFlags", []string{"export", "--json", "--exclude", " "}, "invalid export command"},
		{"PublishFailure", []string{"export", "--json", "--output", filepath.Join(env.dir, "missing", "modlist.json")}, "Failed to write mod list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.execute(t, tt.args...)
			require.Error(t, err)

			var result commands.CommandResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			assert.Len(t, result.Errors, 1)
		})
	}
}

func TestExportCommand_JSONWarnsWhenNothingExported(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "export", "--json", "--exclude", "jei", "--exclude", "appleskin")
	require.NoError(t, err)

	var result commands.CommandResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, []string{"no components were exported"}, result.Warnings)
}

func TestExportCommand_ReportsPublishFailure(t *testing.T) {
	env := newTestEnv(t)
	missing := filepath.Join(env.dir, "missing", "modlist.json")

	_, err := env.execute(t, "export", "--output", missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, publish.ErrWriteFailed)
	assert.Contains(t, err.Error(), "export failed")

	errorsLogged := env.logger.EntriesAt(ports.LogLevelError)
	require.Len(t, errorsLogged, 1)
	assert.Equal(t, "write", errorsLogged[0].Fields["phase"])
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mods (2)")
	assert.Contains(t, out, "AppleSkin")
	assert.Contains(t, out, "Just Enough Items")
	assert.NotContains(t, out, "Minecraft")
	assert.Less(t, strings.Index(out, "AppleSkin"), strings.Index(out, "Just Enough Items"))

	assert.NoFileExists(t, env.outputPath, "list never publishes")
}

func TestListCommand_JSONMatchesExport(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, expectedDocument, out)
}

func TestListCommand_ExtraExclusions(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "list", "--exclude", "appleskin", "--exclude", "jei")
	require.NoError(t, err)
	assert.Contains(t, out, "Mods (0)")
	assert.Contains(t, out, "No components to display.")
}

func TestCleanCommand(t *testing.T) {
	env := newTestEnv(t)
	outDir := filepath.Dir(env.outputPath)

	stale := filepath.Join(outDir, "0123456789abcdef0123456789abcdef.json")
	require.NoError(t, os.WriteFile(stale, []byte("{"), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(outDir, "fedcba9876543210fedcba9876543210.json")
	require.NoError(t, os.WriteFile(fresh, []byte("{"), 0o644))

	out, err := env.execute(t, "clean", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would remove "+stale)
	assert.NotContains(t, out, fresh)
	assert.FileExists(t, stale)

	out, err = env.execute(t, "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 temporary file(s)")
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)

	_, err = env.execute(t, "clean", "--older-than=-1s")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "Configuration file path: "+env.configPath+"\n", out)

	out, err = env.execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Output Path: "+env.outputPath)
	assert.Contains(t, out, "Excluded IDs: minecraft")
	assert.Contains(t, out, "Atomic Move: true")

	out, err = env.execute(t, "config", "show", "--json")
	require.NoError(t, err)
	var shown ports.Configuration
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, env.outputPath, shown.OutputPath)
}

func TestConfigInitCommand(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "fresh", "config.yaml")
	env.container.ConfigRepo = config.NewCompositeConfigRepositoryWithPath(path)

	out, err := env.execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	require.FileExists(t, path)

	_, err = env.execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = env.execute(t, "config", "init", "--force")
	require.NoError(t, err)

	loaded, err := env.container.ConfigRepo.Load()
	require.NoError(t, err)
	assert.Equal(t, "modlist.json", loaded.OutputPath)
}

type fakeMainContainer struct {
	configFiles []string
	levels      []string
}

func (f *fakeMainContainer) UseConfigFile(path string) error {
	f.configFiles = append(f.configFiles, path)
	return nil
}

func (f *fakeMainContainer) ApplyLogLevel(level string) error {
	f.levels = append(f.levels, level)
	return nil
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	env := newTestEnv(t)
	main := &fakeMainContainer{}
	env.container.MainContainer = main

	_, err := env.execute(t, "--config", "other.yaml", "--debug", "config", "path")
	require.NoError(t, err)

	assert.Equal(t, []string{"other.yaml"}, main.configFiles)
	assert.Equal(t, []string{"debug"}, main.levels)
}

func TestRootCommand_DebugOverridesConfiguredLevel(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "--debug", "list")
	require.NoError(t, err)
	assert.Equal(t, ports.LogLevelDebug, env.logger.GetLogLevel())

	_, err = env.execute(t, "list")
	require.NoError(t, err)
	assert.Equal(t, ports.LogLevelInfo, env.logger.GetLogLevel())
}

func TestRootCommand_Version(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "modlist version "+Version)
	assert.Contains(t, out, "Go version:")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "Épé...", truncateString("Épée de Lumière", 6))
	assert.Equal(t, "a b c", singleLine("  a\n b\t c "))
}
