package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rackpy/internal/diag"
	"rackpy/internal/version"
)

// entrySchema меняется вместе с форматом cacheEntry.
const entrySchema uint16 = 3

const entryExt = ".mp"

// Digest is a sha256 cache key.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// CacheKey mixes the source hash with every option that changes the stored
// payload and the tool version. Lint and single-form mode are part of the key:
// an entry written without lint carries no warnings.
func CacheKey(sourceHash [32]byte, opts Options) Digest {
	h := sha256.New()
	h.Write(sourceHash[:])
	for _, part := range [...]string{
		opts.Translate.Indent,
		opts.Translate.NoneLiteral,
		strconv.FormatBool(opts.NoLint),
		strconv.FormatBool(opts.Single),
		version.Version,
	} {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// DiskPayload is one successful translation.
type DiskPayload struct {
	Path       string
	SourceHash Digest
	Forms      int
	Python     string
	// lint warnings; a cache hit reports them again
	Warnings []diag.Diagnostic
}

// cacheEntry is what lands on disk. Key and Tool guard against renamed or
// stale files: any mismatch reads as a miss.
type cacheEntry struct {
	Schema  uint16
	Tool    string
	Key     Digest
	Stored  time.Time
	Payload DiskPayload
}

// DiskCache stores translations under root/<xx>/<key>.mp. Writers go through
// a temp file and rename, so concurrent readers see whole entries only.
type DiskCache struct {
	root string
}

// OpenDiskCache opens app under the user cache directory ($XDG_CACHE_HOME or
// ~/.cache on Linux).
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{root: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.root
}

func (c *DiskCache) entryPath(key Digest) string {
	name := key.String()
	return filepath.Join(c.root, name[:2], name+entryExt)
}

// Put writes payload under key, replacing any previous entry.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	data, err := msgpack.Marshal(&cacheEntry{
		Schema:  entrySchema,
		Tool:    version.Version,
		Key:     key,
		Stored:  time.Now().UTC(),
		Payload: *payload,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	dst := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get fills out from the entry stored under key. Entries from another schema
// or tool version are misses; a corrupt entry is a miss plus an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := os.ReadFile(c.entryPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var e cacheEntry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if e.Schema != entrySchema || e.Tool != version.Version || e.Key != key {
		return false, nil
	}
	*out = e.Payload
	return true, nil
}

// CacheStats summarizes the entries on disk.
type CacheStats struct {
	Entries int
	Bytes   int64
}

// walk visits every entry file; leftovers of interrupted writes are skipped.
func (c *DiskCache) walk(visit func(path string, info fs.FileInfo) error) error {
	return filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), entryExt) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return visit(path, info)
	})
}

// Stats counts entries and their total size.
func (c *DiskCache) Stats() (CacheStats, error) {
	var st CacheStats
	if c == nil {
		return st, nil
	}
	err := c.walk(func(_ string, info fs.FileInfo) error {
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	return st, err
}

// Prune removes entries not rewritten within maxAge and returns how many
// went away.
func (c *DiskCache) Prune(maxAge time.Duration) (int, error) {
	if c == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	err := c.walk(func(path string, info fs.FileInfo) error {
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// Clear empties the cache but keeps its root directory.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}
	shards, err := os.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.MkdirAll(c.root, 0o755)
		}
		return err
	}
	var errs []error
	for _, sh := range shards {
		errs = append(errs, os.RemoveAll(filepath.Join(c.root, sh.Name())))
	}
	return errors.Join(errs...)
}
