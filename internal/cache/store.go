// Package cache provides the on-disk JSON cache shared by the web-search
// client and the tools. Each entry is a single file rewritten in full; a
// per-store mutex plus write-to-temp-then-rename keeps concurrent writers
// from producing torn files.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Clock abstracts time for TTL tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Store is a directory of JSON cache entries, one file per key.
// The directory is created lazily on first write.
type Store struct {
	dir   string
	clock Clock

	mu sync.Mutex
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, clock: realClock{}}
}

// NewStoreWithClock creates a Store with a custom clock (for testing).
func NewStoreWithClock(dir string, clock Clock) *Store {
	return &Store{dir: dir, clock: clock}
}

// Load reads the entry for key into v if it exists and its timestamp is
// strictly within maxAge. The payload must carry a top-level "timestamp"
// field in RFC 3339 form. Returns false on miss, staleness, or any I/O or
// parse failure — a corrupt entry is treated as a miss and overwritten by
// the next Save.
func (s *Store) Load(key string, maxAge time.Duration, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	var env struct {
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("cache: unreadable entry", "key", key, "error", err)
		return false
	}
	if env.Timestamp.IsZero() || s.clock.Now().Sub(env.Timestamp) >= maxAge {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("cache: payload unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

// Save writes v as the entry for key, replacing any previous entry.
// The caller is responsible for stamping v's timestamp field.
func (s *Store) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling cache entry %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing cache entry %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming cache entry %s: %w", key, err)
	}
	return nil
}

// Now returns the store clock's current time in UTC, for callers stamping
// payloads before Save.
func (s *Store) Now() time.Time {
	return s.clock.Now().UTC()
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Key normalises the given parts into a cache file stem: lowercased, spaces
// replaced with underscores, joined with underscores.
func Key(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		p = strings.ReplaceAll(p, " ", "_")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "_")
}
