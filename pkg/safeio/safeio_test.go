package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFilePreservePerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tests.yml")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFilePreservePerms(path, []byte("new")); err != nil {
		t.Fatalf("WriteFilePreservePerms: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", st.Mode().Perm())
	}
}

func TestWriteNew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tests.yml")

	if err := WriteNew(path, []byte("first"), false); err != nil {
		t.Fatalf("WriteNew create: %v", err)
	}

	err := WriteNew(path, []byte("second"), false)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "first" {
		t.Errorf("file was overwritten without overwrite flag: %q", data)
	}

	if err := WriteNew(path, []byte("second"), true); err != nil {
		t.Fatalf("WriteNew overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	if err := WriteNew(dir, []byte("x"), true); err == nil {
		t.Error("expected error when target is a directory")
	}
}
