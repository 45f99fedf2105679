package configpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantJSON bool
		wantYAML bool
		wantTOML bool
	}{
		{name: "json", path: "my.json", wantJSON: true},
		{name: "yaml", path: "my.yaml", wantYAML: true},
		{name: "yml upper", path: "my.YML", wantYAML: true},
		{name: "toml", path: "my.toml", wantTOML: true},
		{name: "no extension", path: "myconfig", wantJSON: true, wantYAML: true, wantTOML: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, y, to := ConfigCandidatePaths(tt.path)
			require.NotEmpty(t, j)
			require.NotEmpty(t, y)
			require.NotEmpty(t, to)
			assert.Equal(t, tt.wantJSON, j[0] == tt.path)
			assert.Equal(t, tt.wantYAML, y[0] == tt.path)
			assert.Equal(t, tt.wantTOML, to[0] == tt.path)
		})
	}
}

func TestConfigCandidatePathsSearchWorkingDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	j, y, to := ConfigCandidatePaths("")
	assert.Equal(t, filepath.Join(dir, "config.json"), j[0])
	assert.Equal(t, []string{filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.yml")}, y[:2])
	assert.Equal(t, filepath.Join(dir, "config.toml"), to[0])
}
