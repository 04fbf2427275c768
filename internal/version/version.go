// Package version exposes the build version of csprojchange.
package version

import "runtime/debug"

// version is set at build time with -ldflags "-X .../internal/version.version=1.2.3".
var version = ""

// readBuildInfo is a function variable so tests can stub module build info.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, the module version from build
// info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
