package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"taskfmt/internal/format"
	"taskfmt/internal/project"
	"taskfmt/internal/version"
)

// Current schema version - increment when CleanRecord format changes
const cleanCacheSchemaVersion uint16 = 1

// formatterRevision changes whenever the formatting rules change, so that
// records written by an older formatter stop matching.
const formatterRevision = "taskfmt-rules-1"

// CleanCache remembers Taskfiles that are already formatted, keyed by a
// digest of their content and the formatter revision. Thread-safe for
// concurrent access.
type CleanCache struct {
	mu  sync.RWMutex
	dir string
}

// CleanRecord is the msgpack payload stored per clean file.
type CleanRecord struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Size        int
	ContentHash project.Digest
	Revision    project.Digest
	StoredAt    int64 // unix seconds
}

// CacheDir returns $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func CacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenCleanCache initializes the clean-file cache at the standard location.
func OpenCleanCache(app string) (*CleanCache, error) {
	dir, err := CacheDir(app)
	if err != nil {
		return nil, err
	}
	return NewCleanCache(dir)
}

// NewCleanCache uses dir as the cache root.
func NewCleanCache(dir string) (*CleanCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *CleanCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Revision digests everything besides the content that decides the
// formatter's output.
func Revision(opt format.Options) project.Digest {
	return project.HashBytes(fmt.Appendf(nil, "%s|%s|%+v", formatterRevision, version.Version, opt))
}

// CleanKey is the cache key of normalized content under rev.
func CleanKey(content project.Digest, rev project.Digest) project.Digest {
	return project.Combine(content, rev)
}

func (c *CleanCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "clean", key.Hex()+".mp")
}

// Put serializes and writes a record to the disk cache.
func (c *CleanCache) Put(key project.Digest, rec *CleanRecord) (err error) {
	if c == nil || rec == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	rec.Schema = cleanCacheSchemaVersion
	if rec.StoredAt == 0 {
		rec.StoredAt = time.Now().Unix()
	}
	if err = msgpack.NewEncoder(f).Encode(rec); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a record. A missing file or a record from another schema is a
// miss, not an error.
func (c *CleanCache) Get(key project.Digest, out *CleanRecord) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == cleanCacheSchemaVersion, nil
}

// IsClean reports whether key was recorded as clean. Read errors count as a
// miss.
func (c *CleanCache) IsClean(key project.Digest) bool {
	var rec CleanRecord
	ok, err := c.Get(key, &rec)
	return err == nil && ok
}

// DropAll removes every record.
func (c *CleanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
