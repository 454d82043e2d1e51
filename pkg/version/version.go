// Package version holds build metadata, set at link time with
// -ldflags "-X github.com/dendik/mcp-google-map/pkg/version.BuildVersion=...".
package version

import (
	"fmt"
	"runtime"
)

// Product is the name reported to MCP clients and upstream APIs.
const Product = "mcp-google-map"

var (
	BuildVersion = "0.1.0"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"

	// GoVersion is the toolchain the binary was built with.
	GoVersion = runtime.Version()
)

// String returns the -version output.
func String() string {
	return fmt.Sprintf("%s version %s (%s) built on %s with %s",
		Product, BuildVersion, BuildCommit, BuildDate, GoVersion)
}

// UserAgent identifies this server on outbound provider requests.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (+%s)", Product, BuildVersion, runtime.GOOS)
}

// Info returns the build metadata as a map, e.g. for structured logs.
func Info() map[string]string {
	return map[string]string{
		"version":    BuildVersion,
		"commit":     BuildCommit,
		"build_date": BuildDate,
		"go_version": GoVersion,
	}
}
