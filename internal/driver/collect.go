package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"taskfmt/internal/dialect"
	"taskfmt/internal/format"
)

// ErrNoTaskfiles is returned when the given paths contain no Taskfile.
var ErrNoTaskfiles = errors.New("format: no Taskfiles found")

// CollectFiles returns the Taskfiles FormatPaths would process for paths.
func CollectFiles(ctx context.Context, paths []string, exclude []string) ([]string, error) {
	return collectFiles(ctx, paths, dialect.NewPlugin(format.Options{}), exclude)
}

// collectFiles expands paths into a sorted list of Taskfiles. Directories are
// walked recursively and filtered by the dialect's file names and exclude
// patterns; explicit file arguments are always kept.
func collectFiles(ctx context.Context, paths []string, plugin *dialect.Plugin, exclude []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		root := p
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != root && excluded(root, path, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := plugin.LanguageFor(path); ok {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// excluded matches patterns against the slash path relative to root and
// against the base name.
func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
		// "dir/**" should also prune "dir" itself.
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}
