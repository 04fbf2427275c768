package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRunCLI_UpdatesFolder runs the binary entry point against a real folder tree.
func TestRunCLI_UpdatesFolder(t *testing.T) {
	tmp := t.TempDir()

	project := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<Project Sdk=\"Microsoft.NET.Sdk\">\n" +
		"  <PropertyGroup>\n" +
		"    <Version>1.0.0</Version>\n" +
		"  </PropertyGroup>\n" +
		"</Project>\n"

	paths := []string{
		filepath.Join(tmp, "App", "App.csproj"),
		filepath.Join(tmp, "Lib", "nested", "Lib.csproj"),
	}
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(project), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := runCLI([]string{"csprojchange", "-f", tmp, "-t", "Version", "-v", "2.0.0"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)
		if !strings.Contains(content, "<Version>2.0.0</Version>") {
			t.Errorf("%s was not updated:\n%s", p, content)
		}
		if strings.HasPrefix(content, "<?xml") {
			t.Errorf("%s still starts with the XML declaration", p)
		}

		info, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0644 {
			t.Errorf("%s permissions changed to %o", p, info.Mode().Perm())
		}
	}
}

// TestRunCLI_MissingFileFlag verifies that argument errors abort the run.
func TestRunCLI_MissingFileFlag(t *testing.T) {
	if err := runCLI([]string{"csprojchange", "-t", "Version", "-v", "2.0.0"}); err == nil {
		t.Fatal("expected error when -f is missing, got nil")
	}
}

// TestRunCLI_PermissionDenied verifies that write failures halt the run.
func TestRunCLI_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmp := t.TempDir()
	p := filepath.Join(tmp, "App.csproj")
	if err := os.WriteFile(p, []byte("<Project><Version>1</Version></Project>"), 0444); err != nil {
		t.Fatal(err)
	}

	err := runCLI([]string{"csprojchange", "-f", p, "-t", "Version", "-v", "2"})
	if err == nil {
		t.Fatal("expected error for read-only file, got nil")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("unexpected error: %v", err)
	}
}
