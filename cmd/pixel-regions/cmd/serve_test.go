package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCommandStructure(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotEmpty(t, serveCmd.Short)
	assert.NotEmpty(t, serveCmd.Long)
	assert.NotNil(t, serveCmd.RunE)
}

func TestServeCommand_RejectsArgs(t *testing.T) {
	_, err := executeCommand(t, "serve", "extra")
	assert.Error(t, err)
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	_, err := executeCommand(t, "serve", "--log-level", "verbose")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "logging.level")
	}
}
