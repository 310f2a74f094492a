package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/backmassage/assetkit/internal/imaging"
)

// Discover walks root, collects regular files (or symlinks to them) whose
// extension is a re-encodable image format, and returns the paths sorted
// lexicographically for deterministic processing order.
//
// An error on root itself is returned. Errors below root (unreadable
// directories, entries removed mid-walk) are skipped.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if imaging.IsSupportedExt(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
