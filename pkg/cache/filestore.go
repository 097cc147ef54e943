package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ollo-ai/ollo/pkg/models"
)

// FileStore persists cache entries as one JSON file per key under a
// directory. A corrupt or unreadable file is treated as a miss and
// removed, never surfaced as an error.
type FileStore struct {
	dir string
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the entry for key, or nil if absent or corrupt.
func (s *FileStore) Load(key string) *models.DiskEntry {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil
	}

	var de models.DiskEntry
	if err := json.Unmarshal(data, &de); err != nil || de.Response == nil {
		os.Remove(s.path(key))
		return nil
	}
	return &de
}

// Save writes the entry for key. Write failures are logged, not fatal:
// persistence is best-effort on top of the in-memory cache.
func (s *FileStore) Save(key string, de *models.DiskEntry) {
	data, err := json.Marshal(de)
	if err != nil {
		log.Printf("cache: marshal entry %s: %v", key, err)
		return
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		log.Printf("cache: write entry %s: %v", key, err)
	}
}

// Remove deletes the file for key, if any.
func (s *FileStore) Remove(key string) {
	os.Remove(s.path(key))
}

// RemoveAll deletes every entry file in the store directory.
func (s *FileStore) RemoveAll() {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
}

// SweepExpired removes entry files whose expiry has passed, returning
// the number removed.
func (s *FileStore) SweepExpired(now time.Time) int {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0
	}

	removed := 0
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		var de models.DiskEntry
		if err := json.Unmarshal(data, &de); err != nil || !now.Before(de.ExpiresAt) {
			if os.Remove(m) == nil {
				removed++
			}
		}
	}
	return removed
}
