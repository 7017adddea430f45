package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestZipDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "com.example.app")

	contents := []string{
		"base.apk",
		"split_config.arm64_v8a.apk",
		filepath.Join("extra", "nested"),
	}
	for _, rel := range contents {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(rel), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	dest := filepath.Join(base, "com.example.app.zip")
	if err := ZipDir(dest, dir, base); err != nil {
		t.Fatalf("ZipDir() error: %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer r.Close()

	want := []string{
		"com.example.app/base.apk",
		"com.example.app/extra/nested",
		"com.example.app/split_config.arm64_v8a.apk",
	}

	var got []string
	for _, f := range r.File {
		got = append(got, f.Name)
		if f.Method != zip.Deflate {
			t.Errorf("entry %s method = %d, want deflate", f.Name, f.Method)
		}
	}

	if len(got) != len(want) {
		t.Fatalf("archive has %d entries, want %d: %v", len(got), len(want), got)
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("entries not in sorted order: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestZipDirEmptyDirectory(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "com.example.app")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(base, "com.example.app.zip")
	if err := ZipDir(dest, dir, base); err != nil {
		t.Fatalf("ZipDir() error: %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer r.Close()

	if len(r.File) != 0 {
		t.Errorf("archive has %d entries, want 0", len(r.File))
	}
}

func TestZipDirMissingDirectory(t *testing.T) {
	base := t.TempDir()
	dest := filepath.Join(base, "out.zip")

	err := ZipDir(dest, filepath.Join(base, "does-not-exist"), base)
	if err == nil {
		t.Fatal("ZipDir() expected error for missing directory")
	}
}
