package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// These variables are set during build time
var (
	// Version is the current version
	Version = "0.0.0"

	// Revision is the short commit hash of source tree
	Revision = "unknown"

	// BuiltAt is the build time
	BuiltAt = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns version information, filling anything the build
// did not stamp from the module build info embedded by the toolchain.
func GetVersionInfo() Info {
	version := Version
	revision := Revision
	builtAt := BuiltAt

	if bi, ok := debug.ReadBuildInfo(); ok {
		if version == "0.0.0" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if revision == "unknown" && len(s.Value) >= 7 {
					revision = s.Value[:7]
				}
			case "vcs.time":
				if builtAt == "unknown" {
					builtAt = s.Value
				}
			}
		}
	}

	if builtAt == "unknown" {
		builtAt = time.Now().Format(time.RFC3339)
	}

	return Info{
		Version:   version,
		Revision:  revision,
		BuiltAt:   builtAt,
		GoVersion: runtime.Version(),
	}
}

// String returns a string representation of version information
func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nRevision: %s\nBuilt At: %s\nGo Version: %s",
		i.Version, i.Revision, i.BuiltAt, i.GoVersion)
}

// JSON returns a JSON representation of version information
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Print prints version information to stdout
func Print() {
	fmt.Println(GetVersionInfo().String())
}
