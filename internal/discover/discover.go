// Package discover enumerates the input directory and selects the files the
// batch will process.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"autosig/internal/format"
)

// Discover lists the files in dir whose extension canonicalizes into filter,
// excluding any file whose stem ends with one of excludeSuffixes (exact,
// case-sensitive suffix match). The exclusion keeps the tool from picking up
// its own prior output on a second run. Results are sorted lexicographically
// for deterministic processing order.
func Discover(dir string, filter map[format.Tag]bool, excludeSuffixes []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext == "" {
			continue
		}
		tag, err := format.Canonicalize(ext)
		if err != nil || !filter[tag] {
			continue
		}
		if excluded(strings.TrimSuffix(name, ext), excludeSuffixes) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)
	return files, nil
}

func excluded(stem string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(stem, s) {
			return true
		}
	}
	return false
}
