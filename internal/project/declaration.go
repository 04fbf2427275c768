package project

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/csprojchange/internal/core"
)

// HasProjectExt reports whether path has the .csproj extension, ignoring case.
func HasProjectExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csproj")
}

// StripDeclaration rewrites a .csproj file without its first line when that
// line contains "xml". Every line of the rewritten file ends with the line
// ending already used by the file. Files with other extensions and empty
// files are not touched. It reports whether a line was removed.
func StripDeclaration(ctx context.Context, fs core.FileSystem, path string) (bool, error) {
	if !HasProjectExt(path) {
		return false, nil
	}

	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if len(data) == 0 {
		return false, nil
	}

	content := string(data)
	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}

	lines := splitLines(content)
	stripped := false
	if len(lines) > 0 && strings.Contains(lines[0], "xml") {
		lines = lines[1:]
		stripped = true
	}

	var sb strings.Builder
	sb.Grow(len(content))
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString(eol)
	}

	if err := fs.WriteFile(ctx, path, []byte(sb.String()), filePerm(ctx, fs, path)); err != nil {
		return false, fmt.Errorf("failed to write file %q: %w", path, err)
	}

	return stripped, nil
}

// splitLines splits s on \r\n, \n and \r. A trailing line ending does not
// produce an empty final line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
