package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modlist.dev/cli/internal/application/ports"
)

func TestExportCommand_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cmd         ExportCommand
		expectError bool
	}{
		{"Empty_IsValid", ExportCommand{}, false},
		{"FileOutput_IsValid", ExportCommand{OutputPath: "out/modlist.json"}, false},
		{"DirectoryOutput_IsInvalid", ExportCommand{OutputPath: "out/"}, true},
		{"BlankExcludedID_IsInvalid", ExportCommand{ExcludedIDs: []string{"jei", " "}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.expectError {
				var cmdErr CommandError
				require.ErrorAs(t, err, &cmdErr)
				assert.Equal(t, ErrCodeValidation, cmdErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExportCommand_Apply(t *testing.T) {
	base := &ports.Configuration{
		ExcludedIDs: []string{"minecraft"},
		OutputPath:  "modlist.json",
		AtomicMove:  true,
		ModsDir:     "mods",
	}
	atomic := false
	cmd := &ExportCommand{
		OutputPath:  "./out/list.json",
		ExcludedIDs: []string{" jei "},
		AtomicMove:  &atomic,
	}

	got := cmd.Apply(base)

	assert.Equal(t, "out/list.json", got.OutputPath)
	assert.Equal(t, []string{"minecraft", "jei"}, got.ExcludedIDs)
	assert.False(t, got.AtomicMove)
	assert.Equal(t, "mods", got.ModsDir)

	assert.Equal(t, []string{"minecraft"}, base.ExcludedIDs, "base configuration is not modified")
	assert.True(t, base.AtomicMove)
}

func TestExportCommand_ApplyWithoutOverrides(t *testing.T) {
	base := &ports.Configuration{OutputPath: "modlist.json", AtomicMove: true}

	got := (&ExportCommand{}).Apply(base)

	assert.Equal(t, *base, *got)
	assert.Equal(t, "export", (&ExportCommand{}).GetType())
}
