package cache

import (
	"context"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores entries under a directory, one file per key, grouped
// into a subdirectory per pipeline stage so chips, layouts, and artifacts
// can be inspected or cleared separately.
//
// Each entry file starts with an 8-byte big-endian expiry (unix
// nanoseconds, zero for none) followed by the raw payload. Artifacts are
// written verbatim, so a cached SVG is a readable SVG after the header.
type FileCache struct {
	dir string
}

// entryHeaderLen is the size of the expiry header in every entry file.
const entryHeaderLen = 8

// entryExt marks cache entry files so Clear never touches anything else.
const entryExt = ".entry"

// NewFileCache creates a file-based cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Truncated entries are dropped and treated as misses.
	if len(data) < entryHeaderLen {
		_ = os.Remove(path)
		return nil, false, nil
	}

	expiry := int64(binary.BigEndian.Uint64(data[:entryHeaderLen]))
	if expiry != 0 && time.Now().UnixNano() > expiry {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return data[entryHeaderLen:], true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var header [entryHeaderLen]byte
	if ttl != 0 {
		binary.BigEndian.PutUint64(header[:], uint64(time.Now().Add(ttl).UnixNano()))
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, append(header[:], data...), 0644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry and returns the number removed. Files without
// the entry extension are left alone.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() && filepath.Ext(path) == entryExt {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, err
	}

	// Drop stage directories left empty.
	if stages, err := os.ReadDir(c.dir); err == nil {
		for _, s := range stages {
			if s.IsDir() {
				_ = os.Remove(filepath.Join(c.dir, s.Name()))
			}
		}
	}
	return removed, nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path. The stage segment of the key
// (second to last, so scoped keys still resolve) picks the subdirectory;
// keys without one land in "misc".
func (c *FileCache) path(key string) string {
	stage := "misc"
	if segs := strings.Split(key, ":"); len(segs) >= 2 {
		if s := segs[len(segs)-2]; s != "" && !strings.ContainsAny(s, `/\.`) {
			stage = s
		}
	}
	return filepath.Join(c.dir, stage, Hash([]byte(key))+entryExt)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
