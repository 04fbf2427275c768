package core

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"testing"
)

func TestMockFileSystem_ReadDirNested(t *testing.T) {
	m := NewMockFileSystem()
	m.SetFile("/repo/b.csproj", []byte("b"))
	m.SetFile("/repo/a/x.csproj", []byte("x"))
	m.SetFile("/repo/a/y/z.csproj", []byte("z"))

	ctx := context.Background()
	entries, err := m.ReadDir(ctx, "/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name() != "a" || !entries[0].IsDir() {
		t.Errorf("entries[0] = %s (dir=%v), want directory a", entries[0].Name(), entries[0].IsDir())
	}
	if entries[1].Name() != "b.csproj" || entries[1].IsDir() {
		t.Errorf("entries[1] = %s (dir=%v), want file b.csproj", entries[1].Name(), entries[1].IsDir())
	}

	info, err := m.Stat(ctx, "/repo/a/y")
	if err != nil || !info.IsDir() {
		t.Errorf("Stat(/repo/a/y) = %v, %v; want directory", info, err)
	}
}

func TestMockFileSystem_NotExist(t *testing.T) {
	m := NewMockFileSystem()
	ctx := context.Background()

	if _, err := m.ReadFile(ctx, "/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
	if _, err := m.Stat(ctx, "/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat error = %v, want fs.ErrNotExist", err)
	}
	if _, err := m.ReadDir(ctx, "/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFileSystem_StatBelowFile(t *testing.T) {
	m := NewMockFileSystem()
	m.SetFile("/repo/App.csproj", []byte("x"))

	if _, err := m.Stat(context.Background(), "/repo/App.csproj/x"); !errors.Is(err, syscall.ENOTDIR) {
		t.Errorf("Stat error = %v, want ENOTDIR", err)
	}
}

func TestMockFileSystem_WriteTracksPermAndCount(t *testing.T) {
	m := NewMockFileSystem()
	ctx := context.Background()

	if err := m.WriteFile(ctx, "/a.csproj", []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFile(ctx, "/a.csproj", []byte("2"), 0644); err != nil {
		t.Fatal(err)
	}

	if m.Writes["/a.csproj"] != 2 {
		t.Errorf("Writes = %d, want 2", m.Writes["/a.csproj"])
	}
	if m.Perm("/a.csproj") != 0644 {
		t.Errorf("Perm = %o, want 644", m.Perm("/a.csproj"))
	}
	if data, _ := m.GetFile("/a.csproj"); string(data) != "2" {
		t.Errorf("content = %q, want 2", data)
	}
}

func TestMockFileSystem_ContextCancelled(t *testing.T) {
	m := NewMockFileSystem()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.ReadFile(ctx, "/a"); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadFile error = %v, want context.Canceled", err)
	}
	if err := m.WriteFile(ctx, "/a", nil, PermOwnerRW); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteFile error = %v, want context.Canceled", err)
	}
}
