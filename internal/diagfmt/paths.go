package diagfmt

import (
	"taskfmt/internal/source"
)

// displayPath renders path according to mode. Files known to fs use its
// base directory for relative paths.
func displayPath(path string, fs *source.FileSet, mode PathMode) string {
	if path == "" {
		return ""
	}
	f := &source.File{Path: path}
	if fs != nil {
		if known, ok := fs.GetByPath(path); ok {
			f = known
		}
	}
	baseDir := ""
	if fs != nil {
		baseDir = fs.BaseDir()
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
