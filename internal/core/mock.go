package core

import (
	"context"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Paths are slash separated; directories are implied by the files stored under them.
type MockFileSystem struct {
	mu    sync.Mutex
	files map[string]mockFile

	// ReadErr, when set, is returned by every ReadFile call.
	ReadErr error
	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
	// ReadDirErr, when set, is returned by every ReadDir call.
	ReadDirErr error

	// Writes counts successful WriteFile calls per path.
	Writes map[string]int
}

type mockFile struct {
	data []byte
	perm os.FileMode
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string]mockFile),
		Writes: make(map[string]int),
	}
}

// SetFile stores data at p with PermOwnerRW.
func (m *MockFileSystem) SetFile(p string, data []byte) {
	m.SetFileWithPerm(p, data, PermOwnerRW)
}

// SetFileWithPerm stores data at p with the given permission.
func (m *MockFileSystem) SetFileWithPerm(p string, data []byte, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(p)] = mockFile{data: slices.Clone(data), perm: perm}
}

// GetFile returns the stored contents of p.
func (m *MockFileSystem) GetFile(p string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[path.Clean(p)]
	return f.data, ok
}

// Perm returns the stored permission of p.
func (m *MockFileSystem) Perm(p string) os.FileMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[path.Clean(p)].perm
}

func (m *MockFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return slices.Clone(f.data), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, p string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := path.Clean(p)
	m.files[clean] = mockFile{data: slices.Clone(data), perm: perm}
	m.Writes[clean]++
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, p string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clean := path.Clean(p)
	if f, ok := m.files[clean]; ok {
		return mockInfo{name: path.Base(clean), size: int64(len(f.data)), mode: f.perm}, nil
	}
	if m.isDirLocked(clean) {
		return mockInfo{name: path.Base(clean), mode: fs.ModeDir | 0755}, nil
	}
	for dir := path.Dir(clean); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			return nil, &fs.PathError{Op: "stat", Path: p, Err: syscall.ENOTDIR}
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// ReadDir lists the direct children of p in lexical order, like os.ReadDir.
func (m *MockFileSystem) ReadDir(ctx context.Context, p string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := path.Clean(p)
	if !m.isDirLocked(dir) {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}

	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}

	seen := make(map[string]os.DirEntry)
	for name, f := range m.files {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		child, _, nested := strings.Cut(rest, "/")
		if nested {
			seen[child] = fs.FileInfoToDirEntry(mockInfo{name: child, mode: fs.ModeDir | 0755})
			continue
		}
		seen[child] = fs.FileInfoToDirEntry(mockInfo{name: child, size: int64(len(f.data)), mode: f.perm})
	}

	entries := make([]os.DirEntry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (m *MockFileSystem) isDirLocked(dir string) bool {
	prefix := dir + "/"
	if dir == "/" {
		prefix = "/"
	}
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

type mockInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (i mockInfo) Name() string       { return i.name }
func (i mockInfo) Size() int64        { return i.size }
func (i mockInfo) Mode() os.FileMode  { return i.mode }
func (i mockInfo) ModTime() time.Time { return time.Time{} }
func (i mockInfo) IsDir() bool        { return i.mode.IsDir() }
func (i mockInfo) Sys() any           { return nil }

var _ FileSystem = (*MockFileSystem)(nil)
