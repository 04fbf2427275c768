package version

import (
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	origVersion, origRead := version, readBuildInfo
	t.Cleanup(func() { version, readBuildInfo = origVersion, origRead })

	t.Run("ldflags", func(t *testing.T) {
		version = "1.2.3"
		if got := GetVersion(); got != "1.2.3" {
			t.Errorf("GetVersion() = %q, want 1.2.3", got)
		}
	})

	t.Run("build info", func(t *testing.T) {
		version = ""
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
		}
		if got := GetVersion(); got != "v0.4.0" {
			t.Errorf("GetVersion() = %q, want v0.4.0", got)
		}
	})

	t.Run("devel", func(t *testing.T) {
		version = ""
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
		}
		if got := GetVersion(); got != "dev" {
			t.Errorf("GetVersion() = %q, want dev", got)
		}
	})
}
