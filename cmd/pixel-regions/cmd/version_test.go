package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommandStructure(t *testing.T) {
	assert.NotNil(t, versionCmd)
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotEmpty(t, versionCmd.Short)
	assert.NotEmpty(t, versionCmd.Long)
	assert.NotNil(t, versionCmd.Run)
}

func TestRunVersion(t *testing.T) {
	originalVersion := Version
	originalCommit := Commit
	defer func() {
		Version = originalVersion
		Commit = originalCommit
	}()

	tests := []struct {
		name    string
		version string
		commit  string
	}{
		{"dev build", "0.1.0-dev", "unknown"},
		{"release build", "1.2.0", "abc1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			Commit = tt.commit

			var buf bytes.Buffer
			versionCmd.SetOut(&buf)
			defer versionCmd.SetOut(nil)

			runVersion(versionCmd, nil)

			out := buf.String()
			assert.Contains(t, out, "pixel-regions version "+tt.version)
			assert.Contains(t, out, "Commit: "+tt.commit)
			assert.Contains(t, out, "Go version: "+runtime.Version())
			assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
		})
	}
}
