// Package scan enumerates the image files of a batch run.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is one enumerated filesystem entry.
type File struct {
	Path string
	Size int64
}

// Files lists the files under root whose name matches pattern,
// case-insensitively. With recursive set it descends into subdirectories
// in lexical walk order; otherwise it lists root's direct entries only.
// Entries that cannot be accessed are skipped silently and directories are
// never returned. The order is stable within one run and is not re-sorted.
func Files(root, pattern string, recursive bool) ([]File, error) {
	// Surface a bad pattern before any file is touched.
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	if recursive {
		return walkFiles(root, pattern)
	}
	return listFiles(root, pattern)
}

func listFiles(root, pattern string) ([]File, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !matches(pattern, entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Entry vanished or is inaccessible, leave it out.
			continue
		}
		files = append(files, File{Path: filepath.Join(root, entry.Name()), Size: info.Size()})
	}
	return files, nil
}

func walkFiles(root, pattern string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Inaccessible entry or subtree, skip it.
			return nil
		}
		if d.IsDir() || !matches(pattern, d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, File{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}
	return files, nil
}

func matches(pattern, name string) bool {
	// Pattern was validated up front, so the error cannot fire here.
	ok, _ := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	return ok
}
