package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskfmt/internal/driver"
	"taskfmt/internal/format"
	"taskfmt/internal/project"
)

func TestCleanCache_PutGetDrop(t *testing.T) {
	cache, err := driver.NewCleanCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCleanCache: %v", err)
	}
	rev := driver.Revision(format.Options{})
	key := driver.CleanKey(project.HashBytes([]byte("version: \"3\"\n")), rev)

	if cache.IsClean(key) {
		t.Fatal("empty cache must miss")
	}
	if err := cache.Put(key, &driver.CleanRecord{Path: "Taskfile.yml", Size: 13}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var rec driver.CleanRecord
	ok, err := cache.Get(key, &rec)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if rec.Path != "Taskfile.yml" || rec.Size != 13 || rec.StoredAt == 0 {
		t.Fatalf("record = %+v", rec)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if cache.IsClean(key) {
		t.Fatal("DropAll must clear records")
	}
	if _, err := os.Stat(cache.Dir()); err != nil {
		t.Fatalf("cache dir must be recreated: %v", err)
	}
}

func TestCleanCache_NilIsNoop(t *testing.T) {
	var cache *driver.CleanCache
	if err := cache.Put(project.Digest{}, &driver.CleanRecord{}); err != nil {
		t.Fatal(err)
	}
	if cache.IsClean(project.Digest{}) || cache.DropAll() != nil {
		t.Fatal("nil cache must behave as empty")
	}
}

func TestRevision_DependsOnOptions(t *testing.T) {
	a := driver.Revision(format.Options{})
	opt := format.Options{}
	opt.Stringify.Indent = 4
	if a == driver.Revision(opt) {
		t.Fatal("indent must change the revision")
	}
}

func TestCacheDir_XDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	dir, err := driver.CacheDir("taskfmt")
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if dir != filepath.Join(base, "taskfmt") {
		t.Fatalf("dir = %q", dir)
	}
}
