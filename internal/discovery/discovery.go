package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/csprojchange/internal/config"
	"github.com/indaco/csprojchange/internal/core"
)

// Service enumerates project files.
type Service struct {
	fs  core.FileSystem
	cfg *config.Config
}

// NewService creates a new discovery Service. A nil cfg uses config.Default().
func NewService(fs core.FileSystem, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{fs: fs, cfg: cfg}
}

// Enumerate returns the files to process for path.
//
// An existing file is returned as is, without applying include or exclude
// patterns. An existing directory is walked recursively in ReadDir order and
// every file whose relative path matches an include pattern and no exclude
// pattern is returned. Any other path yields an empty result and no error.
func (s *Service) Enumerate(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(ctx, path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = s.walkDirectory(ctx, path, path, func(file string) {
		files = append(files, file)
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// walkDirectory visits dir depth first, calling fn for every selected file.
func (s *Service) walkDirectory(ctx context.Context, root, dir string, fn func(string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel := relativePath(root, path)

		if s.matchesAny(rel, s.cfg.GetExcludePatterns()) {
			continue
		}

		if entry.IsDir() {
			if err := s.walkDirectory(ctx, root, path, fn); err != nil {
				return err
			}
			continue
		}

		if s.matchesAny(rel, s.cfg.GetIncludePatterns()) {
			fn(path)
		}
	}

	return nil
}

// matchesAny reports whether rel matches one of patterns. Matching ignores
// case, as MSBuild does for project file names.
func (s *Service) matchesAny(rel string, patterns []string) bool {
	lower := strings.ToLower(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(strings.ToLower(pattern), lower); ok {
			return true
		}
	}
	return false
}

// relativePath returns path relative to root in slash form.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
