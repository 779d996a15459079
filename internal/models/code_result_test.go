package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codegen-server/internal/models"
)

func TestParseCodeGenType(t *testing.T) {
	for _, valid := range []string{"html", "multi_file", "project"} {
		got, err := models.ParseCodeGenType(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, models.CodeGenType(valid), got)
	}

	_, err := models.ParseCodeGenType("vue_project")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrGeneration)
}

func TestOutputDirName(t *testing.T) {
	assert.Equal(t, "html_42", models.OutputDirName(models.CodeGenTypeHTML, 42))
	assert.Equal(t, "multi_file_7", models.OutputDirName(models.CodeGenTypeMultiFile, 7))
}

func TestIsValidMessageType(t *testing.T) {
	assert.True(t, models.IsValidMessageType(models.MessageTypeUser))
	assert.True(t, models.IsValidMessageType(models.MessageTypeAI))
	assert.False(t, models.IsValidMessageType("system"))
}
