package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	ref, err := fs.Save(context.Background(), "printer.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if ref != "/uploads/printer.jpg" {
		t.Fatalf("ref = %q", ref)
	}
	data, err := os.ReadFile(filepath.Join(dir, "printer.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("content = %q", data)
	}

	if err := fs.Remove(context.Background(), ref); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "printer.jpg")); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	// Missing files are ignored.
	if err := fs.Remove(context.Background(), ref); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestFileStoreSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ref, err := fs.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "image/png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(ref, "..") {
		t.Fatalf("ref contains traversal: %q", ref)
	}
	if _, err := os.Stat(filepath.Join(dir, "passwd")); err != nil {
		t.Fatalf("sanitized file missing: %v", err)
	}
}

func TestRefKey(t *testing.T) {
	if got := RefKey("/uploads/a.jpg"); got != "a.jpg" {
		t.Fatalf("got %q", got)
	}
	if got := RefKey("bare.jpg"); got != "bare.jpg" {
		t.Fatalf("got %q", got)
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for blank base path")
	}
}
