// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/lukaschristensson/TimeLinePlot/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/lukaschristensson/TimeLinePlot/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/lukaschristensson/TimeLinePlot/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

func init() {
	if Version != "dev" {
		return
	}
	// go install stamps the module version even without ldflags.
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope identifies the renderer build in artifact cache keys, so a
// new release never serves artifacts painted by an older one.
func CacheScope() string {
	if Version == "dev" {
		return "dev-" + Commit
	}
	return Version
}
