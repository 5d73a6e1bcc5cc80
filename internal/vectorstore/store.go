// Package vectorstore is a small JSON-file document store with cosine
// similarity search, used as the knowledge sink for scraped content.
package vectorstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Document is one stored text with its metadata.
type Document struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
}

// Match is one search hit.
type Match struct {
	Document   Document
	Similarity float64
}

type storeFile struct {
	Documents   []Document  `json:"documents"`
	Embeddings  [][]float64 `json:"embeddings"`
	LastUpdated time.Time   `json:"last_updated"`
}

// Store persists documents and their embeddings in a single JSON file.
// Documents added without embeddings are kept but excluded from search.
type Store struct {
	path string

	mu         sync.Mutex
	documents  []Document
	embeddings [][]float64
}

// Open loads the store at path, starting empty if the file does not exist
// or cannot be parsed.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("vector store unreadable, starting empty", "path", path, "error", err)
		}
		return s
	}
	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Warn("vector store corrupt, starting empty", "path", path, "error", err)
		return s
	}
	s.documents = f.Documents
	s.embeddings = f.Embeddings
	slog.Info("loaded vector store", "path", path, "documents", len(s.documents))
	return s
}

// Add appends a document without an embedding and persists the store.
func (s *Store) Add(text string, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = append(s.documents, Document{
		ID:        uuid.NewString(),
		Text:      text,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	})
	return s.save()
}

// AddWithEmbeddings appends documents paired with their embeddings.
func (s *Store) AddWithEmbeddings(docs []Document, embeddings [][]float64) error {
	if len(docs) != len(embeddings) {
		return fmt.Errorf("documents (%d) and embeddings (%d) must match", len(docs), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		if doc.Timestamp.IsZero() {
			doc.Timestamp = time.Now().UTC()
		}
		s.documents = append(s.documents, doc)
		s.embeddings = append(s.embeddings, embeddings[i])
	}
	return s.save()
}

// Search returns up to k embedded documents ranked by cosine similarity to
// the query embedding, highest first.
func (s *Store) Search(query []float64, k int) []Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]Match, 0, len(s.embeddings))
	for i, emb := range s.embeddings {
		if i >= len(s.documents) {
			break
		}
		sim := cosine(emb, query)
		if math.IsNaN(sim) {
			continue
		}
		matches = append(matches, Match{Document: s.documents[i], Similarity: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.documents)
}

// Clear drops all documents and persists the empty store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = nil
	s.embeddings = nil
	return s.save()
}

// save writes the store atomically. Callers hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	f := storeFile{
		Documents:   s.documents,
		Embeddings:  s.embeddings,
		LastUpdated: time.Now().UTC(),
	}
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshalling vector store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing vector store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing vector store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming vector store: %w", err)
	}
	return nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
