package source

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Taskfile.yml", []byte("version: '3'\n"), 0)
	id2 := fs.Add("Taskfile.yml", []byte("version: '3'\ntasks: {}\n"), 0)

	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetByPath("Taskfile.yml")
	if !ok || latest.ID != id2 {
		t.Fatalf("GetByPath = %v, %v; want id %d", latest, ok, id2)
	}
	if fs.Get(id1).Hash == fs.Get(id2).Hash {
		t.Error("different contents produced the same hash")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(99) != nil {
		t.Error("unknown id returned a file")
	}
}

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\nc\rd"))
	if !changed {
		t.Fatal("expected CRLF normalization to be detected")
	}
	if string(normalized) != "a\nb\nc\rd" {
		t.Fatalf("normalized = %q", normalized)
	}

	same, changed := normalizeCRLF([]byte("a\nb\n"))
	if changed || string(same) != "a\nb\n" {
		t.Fatalf("LF content rewritten: %q %v", same, changed)
	}
}

func TestBOMRemoval(t *testing.T) {
	withoutBOM, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'})
	if !hadBOM {
		t.Fatal("expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Fatalf("content = %q", withoutBOM)
	}
	if _, hadBOM := removeBOM([]byte{0xEF, 0xBB}); hadBOM {
		t.Fatal("short prefix detected as BOM")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		flags FileFlags
	}{
		{"plain", []byte("a: 1\nb: 2\n"), 0},
		{"crlf", []byte("a: 1\r\nb: 2\r\n"), FileNormalizedCRLF},
		{"bom", []byte("\xEF\xBB\xBFa: 1\n"), FileHadBOM},
		{"bom_crlf", []byte("\xEF\xBB\xBFa: 1\r\n"), FileHadBOM | FileNormalizedCRLF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, flags := Normalize(tt.input)
			if flags != tt.flags {
				t.Fatalf("flags = %b, want %b", flags, tt.flags)
			}
			f := &File{Content: content, Flags: flags}
			if got := f.Restore(content); !bytes.Equal(got, tt.input) {
				t.Fatalf("Restore = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("<stdin>", []byte("one\ntwo\r\nthree")))

	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	want := []string{"", "one", "two", "three", ""}
	for i, w := range want {
		if got := f.GetLine(uint32(i)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, w)
		}
	}
	if f.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", f.LineCount())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Taskfile.yml")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFversion: '3'\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "version: '3'\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&(FileHadBOM|FileNormalizedCRLF) != FileHadBOM|FileNormalizedCRLF {
		t.Fatalf("flags = %b", f.Flags)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSetConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fs.Add(filepath.Join("dir", string(rune('a'+i%26)), "Taskfile.yml"), []byte("x: 1\n"), 0)
			if fs.Get(id) == nil {
				t.Errorf("file %d missing", id)
			}
		}(i)
	}
	wg.Wait()
	if fs.Len() != 32 {
		t.Fatalf("Len = %d, want 32", fs.Len())
	}
}
