// Package buildinfo carries the release metadata stamped in at link time
// (-X github.com/j2dx/j2dx/internal/buildinfo.Version=...), falling back to
// the module build info for `go install` builds.
package buildinfo

import (
	"runtime/debug"
	"sync"
	"time"
)

var (
	Version = ""
	Commit  = ""
	Date    = ""
)

var once sync.Once

func resolve() {
	if info, ok := debug.ReadBuildInfo(); ok {
		if Version == "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if Commit == "" {
					Commit = setting.Value[:min(7, len(setting.Value))]
				}
			case "vcs.time":
				if Date == "" {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						Date = t.Format("2006-01-02")
					} else {
						Date = setting.Value
					}
				}
			}
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
	if Date == "" {
		Date = "unknown"
	}
}

// Get returns version, commit and build date; never empty.
func Get() (version, commit, date string) {
	once.Do(resolve)
	return Version, Commit, Date
}
