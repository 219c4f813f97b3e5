// Package cache is a disk-backed store for downloaded photo bytes, keyed by
// URL. Writes are atomic (temp file then rename) and the store is pruned
// oldest-first when it grows past its size limit.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// entryExt marks cache files; everything else in the directory is ignored.
const entryExt = ".photo"

// Stats reports store activity and size.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Entries   int
	SizeBytes int64
}

// Store caches photo bytes on disk. It is safe for concurrent use.
type Store struct {
	dir     string
	maxSize int64

	mu    sync.Mutex
	stats Stats
}

// New opens a store rooted at dir, creating it if needed. A non-positive
// maxMB selects 128 MB.
func New(dir string, maxMB int) (*Store, error) {
	if maxMB <= 0 {
		maxMB = 128
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	s := &Store{dir: dir, maxSize: int64(maxMB) << 20}
	s.scanUsage()
	return s, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// hashKey returns the first 16 hex characters of the SHA-256 of key.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// path shards entries into subdirectories by the first two hash characters.
func (s *Store) path(url string) string {
	h := hashKey(url)
	return filepath.Join(s.dir, h[:2], h+entryExt)
}

// Get returns the cached bytes for url.
func (s *Store) Get(url string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(url))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.stats.Misses++
		return nil, false
	}
	s.stats.Hits++
	return data, true
}

// Has reports whether url is cached without reading it.
func (s *Store) Has(url string) bool {
	_, err := os.Stat(s.path(url))
	return err == nil
}

// Put stores data for url atomically and prunes the store if it is over
// its limit.
func (s *Store) Put(url string, data []byte) error {
	p := s.path(url)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cache: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".photo-*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: close temp file: %w", err)
	}

	var prev int64 = -1
	if info, err := os.Stat(p); err == nil {
		prev = info.Size()
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: rename temp file: %w", err)
	}

	s.mu.Lock()
	if prev >= 0 {
		s.stats.SizeBytes -= prev
	} else {
		s.stats.Entries++
	}
	s.stats.SizeBytes += int64(len(data))
	over := s.stats.SizeBytes > s.maxSize
	s.mu.Unlock()

	if over {
		return s.Prune()
	}
	return nil
}

// Fetch returns the cached bytes for url, or calls fetch and caches its
// result. A failed cache write does not fail the fetch.
func (s *Store) Fetch(ctx context.Context, url string, fetch func(context.Context, string) ([]byte, error)) (data []byte, hit bool, err error) {
	if data, ok := s.Get(url); ok {
		return data, true, nil
	}
	data, err = fetch(ctx, url)
	if err != nil {
		return nil, false, err
	}
	_ = s.Put(url, data)
	return data, false, nil
}

// Evict removes the entry for url, if any.
func (s *Store) Evict(url string) {
	p := s.path(url)
	info, err := os.Stat(p)
	if err != nil || os.Remove(p) != nil {
		return
	}
	os.Remove(filepath.Dir(p)) // only succeeds when empty

	s.mu.Lock()
	s.stats.SizeBytes = max(s.stats.SizeBytes-info.Size(), 0)
	s.stats.Entries = max(s.stats.Entries-1, 0)
	s.mu.Unlock()
}

type fileEntry struct {
	path  string
	size  int64
	mtime int64
}

// Prune removes the oldest entries (by mtime) until the store fits its
// limit.
func (s *Store) Prune() error {
	files, err := s.walk()
	if err != nil {
		return err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mtime < files[j].mtime })

	var total int64
	for _, f := range files {
		total += f.size
	}
	for _, f := range files {
		if total <= s.maxSize {
			break
		}
		if os.Remove(f.path) != nil {
			continue
		}
		total -= f.size
		os.Remove(filepath.Dir(f.path))
	}

	s.scanUsage()
	return nil
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Store) walk() ([]fileEntry, error) {
	var files []fileEntry
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != entryExt {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, fileEntry{path: path, size: info.Size(), mtime: info.ModTime().UnixNano()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache: walk dir: %w", err)
	}
	return files, nil
}

func (s *Store) scanUsage() {
	files, _ := s.walk()
	var size int64
	for _, f := range files {
		size += f.size
	}
	s.mu.Lock()
	s.stats.Entries = len(files)
	s.stats.SizeBytes = size
	s.mu.Unlock()
}
