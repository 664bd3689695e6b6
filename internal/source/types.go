package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM records a UTF-8 byte order mark stripped on load.
	FileHadBOM
	// FileNormalizedCRLF records CRLF line endings rewritten to LF on load.
	FileNormalizedCRLF
)

// File captures metadata and normalized content for a single Taskfile.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// IsValid reports whether the position points at a real line.
func (lc LineCol) IsValid() bool {
	return lc.Line > 0
}
