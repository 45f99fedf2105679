//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir is the machine wide configuration directory.
func SystemConfigDir() string {
	if dir := os.Getenv("ProgramData"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	return ""
}
