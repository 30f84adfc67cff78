package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDirSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", 2000)
	writeFile(t, dir, "a.txt", 2000)
	writeFile(t, dir, "tiny.txt", 10) // below MinFileSize, excluded

	files, err := Dir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files within the size filter, got %d", len(files))
	}
	if filepath.Base(files[0].Path) != "a.txt" || filepath.Base(files[1].Path) != "b.txt" {
		t.Fatalf("expected sorted order a.txt, b.txt; got %s, %s", files[0].Path, files[1].Path)
	}
}

func TestTargetExcludesCompressedSuffixes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.bin", 2000)
	writeFile(t, dir, "archive.gz", 2000)
	writeFile(t, dir, "archive.zip", 2000)
	writeFile(t, dir, "archive.rar", 2000)

	files, err := Target(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file after excluding compressed suffixes, got %d", len(files))
	}
	if filepath.Base(files[0].Path) != "data.bin" {
		t.Fatalf("unexpected file selected: %s", files[0].Path)
	}
}

func TestTargetSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "solo.bin", 2000)

	files, err := Target(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != path {
		t.Fatalf("expected exactly the single target file, got %+v", files)
	}
}

func TestTargetSingleFileOutsideSizeFilter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny.bin", 10)

	files, err := Target(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files for an undersized target, got %d", len(files))
	}
}
