//go:build !windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir is the machine wide configuration directory. On Unix,
// services running as root read /etc/j2dx.
func SystemConfigDir() string {
	if os.Geteuid() == 0 {
		return filepath.Join(string(os.PathSeparator), "etc", appDir)
	}
	return ""
}
