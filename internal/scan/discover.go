package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover expands the path arguments into the ordered list of image files
// to process.
//
// Files named directly are always included, regardless of extension.
// Directories are expanded through the extension filter, recursively when
// recursive is true and only their immediate contents otherwise. The result
// is deduplicated by resolved absolute path and sorted, so the same file
// reached through several arguments or matched by several extensions is
// processed exactly once.
//
// Arguments that do not exist are not fatal: they are returned in missing
// for the caller to report as warnings.
func Discover(paths, exts []string, recursive bool) (files, missing []string) {
	filter := newExtFilter(exts)

	candidates := make([]string, 0)
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			missing = append(missing, p)
		case info.IsDir():
			candidates = append(candidates, expandDir(p, filter, recursive)...)
		default:
			candidates = append(candidates, p)
		}
	}

	seen := make(map[string]bool, len(candidates))
	files = make([]string, 0, len(candidates))
	for _, c := range candidates {
		resolved := resolvePath(c)
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		files = append(files, resolved)
	}
	sort.Strings(files)

	return files, missing
}

// expandDir lists the matching files under dir. Unreadable subtrees are
// skipped silently; discovery is best effort.
func expandDir(dir string, filter extFilter, recursive bool) []string {
	files := make([]string, 0)

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return files
		}
		for _, e := range entries {
			if !e.IsDir() && filter.match(e.Name()) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files
	}

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error { //nolint:errcheck // Best effort traversal
		if err != nil {
			return nil
		}
		if !d.IsDir() && filter.match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// resolvePath returns the absolute path with symlinks resolved, falling back
// to the lexical absolute path when resolution fails.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// extFilter matches file names against a set of extensions, ignoring case.
type extFilter map[string]bool

func newExtFilter(exts []string) extFilter {
	f := make(extFilter, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(e, "."))
		if e != "" {
			f["."+e] = true
		}
	}
	return f
}

func (f extFilter) match(name string) bool {
	return f[strings.ToLower(filepath.Ext(name))]
}
