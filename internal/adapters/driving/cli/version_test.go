package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"release", "test-version-1.0.0", "ecoreport version test-version-1.0.0"},
		{"dev build", "dev", "ecoreport version dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalVersion := version
			SetVersion(tt.version)
			defer func() { version = originalVersion }()

			stdout, _, err := execute(t, nil, "version")

			assert.NoError(t, err)
			assert.Contains(t, stdout, tt.expected)
			assert.Contains(t, stdout, runtime.GOOS+"/"+runtime.GOARCH)
		})
	}
}
