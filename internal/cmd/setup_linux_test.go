//go:build linux

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUinput(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "uinput")
	require.NoError(t, os.WriteFile(regular, nil, 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "missing", path: filepath.Join(dir, "nope"), wantErr: "does not exist"},
		{name: "not a device", path: regular, wantErr: "not a character device"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkUinput(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteUdevRule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rules.d")

	path, err := writeUdevRule(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, udevRuleFile), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `KERNEL=="uinput"`)
	assert.Contains(t, string(b), `GROUP="input"`)
}
