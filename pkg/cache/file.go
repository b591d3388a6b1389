package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores entries on disk, one file per entry, grouped by value
// class: generated network documents under network/, rendered artifacts
// under artifact/. It backs the CLI, where results must survive between
// invocations without a server process.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope. Payload is the cached value;
// a zero Expires means the entry never expires.
type fileEntry struct {
	Expires time.Time `json:"expires,omitzero"`
	Payload []byte    `json:"payload"`
}

// Get retrieves a value. Expired and unreadable entries are removed and
// reported as misses, never as errors: the pipeline can always recompute.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.Expires.IsZero() && time.Now().After(entry.Expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Payload, true, nil
}

// Set stores a value with the given TTL.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Payload: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl)
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0644)
}

// Delete removes a value. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing; the file cache holds no open resources.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its file. The class prefix of the key ("network:",
// "artifact:") becomes a subdirectory, so cache inspection and clearing
// can report entries per class; the filename is the hash of the full key,
// which keeps arbitrary key content out of the filesystem.
func (c *FileCache) path(key string) string {
	class := "misc"
	if i := strings.Index(key, ":"); i > 0 && isPathSafe(key[:i]) {
		class = key[:i]
	}
	return filepath.Join(c.dir, class, Hash([]byte(key))+".json")
}

// isPathSafe reports whether s can serve as a directory name as-is.
func isPathSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

var _ Cache = (*FileCache)(nil)
