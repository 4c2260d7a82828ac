package fileutil_test

// Notes:
// - TestWriteTempFile_CreateTempError sets TMPDIR with t.Setenv and cannot
//   run in parallel with other tests.
// - The Write and Close error branches of WriteTempFile are not tested
//   because triggering disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-talksite/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid extension md", "md", nil},
		{"valid extension html", "html", nil},
		{"empty extension", "", fileutil.ErrExtensionEmpty},
		{"forward slash path traversal", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash path traversal", "..\\windows\\system32", fileutil.ErrExtensionPathTraversal},
		{"null byte injection", "html\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		extension string
	}{
		{"markdown file", "---\ntitle: Keynote\n---\n# Keynote", "md"},
		{"html file", "<html><body>Talks</body></html>", "html"},
		{"empty content", "", "md"},
		{"unicode content", "Pune 🇮🇳, São Paulo", "md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, cleanup, err := fileutil.WriteTempFile([]byte(tt.content), tt.extension)
			if err != nil {
				t.Fatalf("WriteTempFile() error = %v", err)
			}
			defer cleanup()

			if !strings.Contains(filepath.Base(path), "go-talksite-") {
				t.Errorf("path %q does not contain prefix 'go-talksite-'", path)
			}
			if !strings.HasSuffix(path, "."+tt.extension) {
				t.Errorf("path %q does not have extension .%s", path, tt.extension)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read temp file: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("file content = %q, want %q", data, tt.content)
			}
		})
	}
}

func TestWriteTempFile_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile([]byte("content"), "md")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", path)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile([]byte("content"), "../foo")
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

func TestWriteTempFile_CreateTempError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR is not consulted on windows")
	}
	t.Setenv("TMPDIR", "/nonexistent/path/that/does/not/exist")

	_, _, err := fileutil.WriteTempFile([]byte("content"), "md")
	if err == nil {
		t.Fatal("WriteTempFile() expected error when TMPDIR is invalid, got nil")
	}
	if !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("WriteTempFile() error = %q, want error containing 'creating temp file'", err)
	}
}

// ---------------------------------------------------------------------------
// TestReadIfExists
// ---------------------------------------------------------------------------

func TestReadIfExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "index.md")
	if err := os.WriteFile(path, []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := fileutil.ReadIfExists(path)
	if err != nil || string(got) != "notes" {
		t.Errorf("ReadIfExists(existing) = %q, %v", got, err)
	}

	got, err = fileutil.ReadIfExists(filepath.Join(dir, "missing.md"))
	if err != nil || got != nil {
		t.Errorf("ReadIfExists(missing) = %q, %v, want nil, nil", got, err)
	}

	if _, err := fileutil.ReadIfExists(dir); err == nil {
		t.Error("ReadIfExists(dir) expected error")
	}
}

// ---------------------------------------------------------------------------
// TestWriteIfChanged
// ---------------------------------------------------------------------------

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "T1", "index.md")

	changed, err := fileutil.WriteIfChanged(path, []byte("v1"))
	if err != nil || !changed {
		t.Fatalf("first write = %v, %v, want true, nil", changed, err)
	}

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	changed, err = fileutil.WriteIfChanged(path, []byte("v1"))
	if err != nil || changed {
		t.Fatalf("identical write = %v, %v, want false, nil", changed, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Errorf("identical write touched the file: mtime %v", info.ModTime())
	}

	changed, err = fileutil.WriteIfChanged(path, []byte("v2"))
	if err != nil || !changed {
		t.Fatalf("new content = %v, %v, want true, nil", changed, err)
	}
	if data, _ := os.ReadFile(path); string(data) != "v2" {
		t.Errorf("content = %q, want v2", data)
	}
}

func TestWriteIfChanged_ParentIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "T1")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := fileutil.WriteIfChanged(filepath.Join(blocker, "index.md"), []byte("v1")); err == nil {
		t.Error("WriteIfChanged() expected error when parent is a file")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestIsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "talks.csv")
	if err := os.WriteFile(file, []byte("Talk ID"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"directory", dir, false},
		{"nonexistent", filepath.Join(dir, "nope"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"talksite":                false,
		"my-site":                 false,
		"./talksite.yaml":         true,
		"/etc/talksite.yaml":      true,
		"C:\\sites\\talksite.yml": true,
		"sub/dir":                 true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
