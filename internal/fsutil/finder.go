// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// FindFiles returns the files under root whose names end with one of
// extensions, in lexical order. When root is a file it is returned as is,
// whatever its extension.
func FindFiles(fsys afero.Fs, root string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		panic("extensions must not be empty")
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if slices.ContainsFunc(extensions, func(ext string) bool { return strings.HasSuffix(info.Name(), ext) }) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FindAll runs FindFiles on every root and returns the union without
// duplicates, keeping first-seen order.
func FindAll(fsys afero.Fs, roots []string, extensions []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, root := range roots {
		files, err := FindFiles(fsys, root, extensions)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out, nil
}
