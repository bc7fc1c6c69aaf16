package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandResult(t *testing.T) {
	cmd := &ExportCommand{}

	result := NewSuccessResult(cmd, "done", 3)
	result.AddWarning("nothing excluded")
	result.SetMetadata("mods_dir", "mods")

	assert.True(t, result.Success)
	assert.Equal(t, "export", result.Command)
	assert.Equal(t, 3, result.Data)
	assert.Equal(t, []string{"nothing excluded"}, result.Warnings)
	assert.Equal(t, map[string]interface{}{"mods_dir": "mods"}, result.Metadata)

	failed := NewErrorResult(cmd, "failed", errors.New("boom"))
	assert.False(t, failed.Success)
	assert.Equal(t, []string{"boom"}, failed.Errors)
}

func TestPrepare(t *testing.T) {
	result, err := Prepare(&ExportCommand{OutputPath: "out.json"})
	assert.NoError(t, err)
	assert.Nil(t, result)

	result, err = Prepare(&ExportCommand{ExcludedIDs: []string{""}})
	var cmdErr CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, ErrCodeValidation, cmdErr.Code)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "invalid export command", result.Message)
	assert.Equal(t, []string{err.Error()}, result.Errors)
}
