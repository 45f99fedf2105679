// Package configpaths resolves where j2dx looks for configuration files.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir   = "j2dx"
	baseName = "config"
)

// DefaultConfigDir is the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir), nil
}

// ConfigCandidatePaths lists the configuration files to try, per format and
// in priority order. A user supplied path comes first; its extension picks
// the loader, and a path without a known extension is tried with all three.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".json":
			jsonPaths = append(jsonPaths, userPath)
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
			yamlPaths = append(yamlPaths, userPath)
			tomlPaths = append(tomlPaths, userPath)
		}
	}

	for _, dir := range searchDirs() {
		base := filepath.Join(dir, baseName)
		jsonPaths = append(jsonPaths, base+".json")
		yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
		tomlPaths = append(tomlPaths, base+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}

func searchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir := SystemConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	return dirs
}
