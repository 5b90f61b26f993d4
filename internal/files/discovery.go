package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one discovered data file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// ListDataFiles returns the files in dir whose names end with one of the
// given extensions, compared case-insensitively. Extensions include the
// dot and may be compound, e.g. ".csv" or ".csv.gz". With no extensions
// every regular file is returned. Results are ordered oldest
// modification first.
func ListDataFiles(dir string, exts ...string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if len(exts) > 0 && !hasAnySuffix(name, exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		found = append(found, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ModTime.Before(found[j].ModTime)
	})

	return found, nil
}

func hasAnySuffix(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// NewestFile returns the most recently modified file in dir whose name
// matches the regular expression pattern.
func NewestFile(dir, pattern string) (FileInfo, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return FileInfo{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	all, err := ListDataFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}

	var matches []FileInfo
	for _, f := range all {
		if re.MatchString(f.Name) {
			matches = append(matches, f)
		}
	}

	latest, ok := Latest(matches)
	if !ok {
		return FileInfo{}, fmt.Errorf("no files in %s match %q", dir, pattern)
	}
	return latest, nil
}

// Latest returns the most recently modified file from a list.
func Latest(list []FileInfo) (FileInfo, bool) {
	if len(list) == 0 {
		return FileInfo{}, false
	}

	latest := list[0]
	for _, f := range list[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}
	return latest, true
}
