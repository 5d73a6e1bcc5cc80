package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type payload struct {
	Timestamp time.Time `json:"timestamp"`
	Results   []string  `json:"results"`
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStoreWithClock(t.TempDir(), clock)

	in := payload{Timestamp: s.Now(), Results: []string{"a: b", "c: d"}}
	if err := s.Save("query", in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out payload
	if !s.Load("query", 24*time.Hour, &out) {
		t.Fatal("Load returned miss for fresh entry")
	}
	if len(out.Results) != 2 || out.Results[0] != "a: b" || out.Results[1] != "c: d" {
		t.Errorf("round-trip results = %v, want %v", out.Results, in.Results)
	}
	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("round-trip timestamp = %v, want %v", out.Timestamp, in.Timestamp)
	}
}

func TestLoadMissOnUnknownKey(t *testing.T) {
	s := NewStore(t.TempDir())
	var out payload
	if s.Load("nothing", time.Hour, &out) {
		t.Error("Load returned hit for missing entry")
	}
}

func TestLoadMissAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStoreWithClock(t.TempDir(), clock)

	if err := s.Save("query", payload{Timestamp: s.Now(), Results: []string{"x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	clock.now = clock.now.Add(24*time.Hour + time.Second)

	var out payload
	if s.Load("query", 24*time.Hour, &out) {
		t.Error("Load returned hit for stale entry")
	}
}

func TestLoadFreshWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStoreWithClock(t.TempDir(), clock)

	if err := s.Save("query", payload{Timestamp: s.Now(), Results: []string{"x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	clock.now = clock.now.Add(23 * time.Hour)

	var out payload
	if !s.Load("query", 24*time.Hour, &out) {
		t.Error("Load returned miss strictly within TTL")
	}
}

func TestLoadMissOnCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out payload
	if s.Load("bad", time.Hour, &out) {
		t.Error("Load returned hit for corrupt entry")
	}
}

func TestConcurrentSavesProduceValidJSON(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save("shared", payload{Timestamp: time.Now().UTC(), Results: []string{"r"}})
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(filepath.Join(dir, "shared.json"))
	if err != nil {
		t.Fatalf("reading entry: %v", err)
	}
	var out payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Errorf("entry is not valid JSON after concurrent writes: %v", err)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"Data Scientist"}, "data_scientist"},
		{[]string{"DevOps Engineer", "Uk"}, "devops_engineer_uk"},
		{[]string{"Mental Health", ""}, "mental_health"},
		{[]string{"Technology", "global"}, "technology_global"},
	}
	for _, tt := range tests {
		if got := Key(tt.parts...); got != tt.want {
			t.Errorf("Key(%v) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}
