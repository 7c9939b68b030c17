package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCommandStructure(t *testing.T) {
	assert.Equal(t, "classify <image>", classifyCmd.Use)
	assert.NotEmpty(t, classifyCmd.Short)
	assert.NotEmpty(t, classifyCmd.Long)
	assert.NotNil(t, classifyCmd.RunE)
	require.NotNil(t, classifyCmd.Flags().Lookup("output"))
}

func TestRunClassify(t *testing.T) {
	img := writeMapImage(t)

	t.Run("default mask name", func(t *testing.T) {
		dir := t.TempDir()
		out, err := executeCommand(t, "classify", img, "--out-dir", dir)
		require.NoError(t, err)

		mask := filepath.Join(dir, "map-red-pixels.jpg")
		assert.Contains(t, out, "14 of 60 pixels match rule red (upper=100, lower=50)")
		assert.Contains(t, out, "Mask: "+mask)
		_, err = os.Stat(mask)
		assert.NoError(t, err)
	})

	t.Run("explicit output and rule", func(t *testing.T) {
		mask := filepath.Join(t.TempDir(), "cyan.png")
		out, err := executeCommand(t, "classify", img, "--rule", "cyan", "--output", mask)
		require.NoError(t, err)

		assert.Contains(t, out, "0 of 60 pixels match rule cyan")
		_, err = os.Stat(mask)
		assert.NoError(t, err)
	})

	t.Run("threshold override", func(t *testing.T) {
		dir := t.TempDir()
		out, err := executeCommand(t, "classify", img, "--out-dir", dir, "--upper", "255")
		require.NoError(t, err)
		assert.Contains(t, out, "0 of 60 pixels match rule red (upper=255, lower=50)")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := executeCommand(t, "classify", img, "--output", filepath.Join(t.TempDir(), "mask.xyz"))
		require.Error(t, err)
	})
}
