// Package scan lists the regular files a run should process: a
// sorted-by-path directory walk with the file-size filter both CLI
// surfaces share.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MinFileSize and MaxFileSize bound the accepted file size range; files
// outside [MinFileSize, MaxFileSize] are skipped.
const (
	MinFileSize = 1000
	MaxFileSize = 4_000_000_000
)

// packExcludedSuffixes names the input extensions the block-aligned
// compressor skips outright — already-compressed containers gain nothing
// from a second content-defined pass.
var packExcludedSuffixes = []string{".gz", ".zip", ".rar"}

// File is one file selected by Dir or Target: its path and size.
type File struct {
	Path string
	Size int64
}

// Dir walks root and returns every regular file within the size filter,
// sorted by full path — the order the dedup aggregator's contract
// requires.
func Dir(root string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !sizeInRange(info.Size()) {
			return nil
		}
		files = append(files, File{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Target resolves a file-or-directory argument (the pack subcommand's
// input) into the list of regular files to pack, applying the same size
// filter as Dir plus the compressed-format exclusion list.
func Target(path string) ([]File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !sizeInRange(info.Size()) || isExcluded(path) {
			return nil, nil
		}
		return []File{{Path: path, Size: info.Size()}}, nil
	}

	all, err := Dir(path)
	if err != nil {
		return nil, err
	}

	var filtered []File
	for _, f := range all {
		if !isExcluded(f.Path) {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}

func sizeInRange(size int64) bool {
	return size >= MinFileSize && size <= MaxFileSize
}

func isExcluded(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range packExcludedSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}
