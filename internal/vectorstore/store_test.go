package vectorstore

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestAddPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.json")

	s := Open(path)
	if err := s.Add("career advice text", map[string]any{"url": "https://example.test"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}

	reopened := Open(path)
	if reopened.Len() != 1 {
		t.Fatalf("reopened len = %d, want 1", reopened.Len())
	}
}

func TestAddAssignsIDs(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "vectors.json"))
	s.Add("one", nil)
	s.Add("two", nil)

	a := s.Search(nil, 0) // no embeddings, so search is empty
	if len(a) != 0 {
		t.Errorf("unembedded documents searchable: %v", a)
	}
	if s.documents[0].ID == "" || s.documents[0].ID == s.documents[1].ID {
		t.Errorf("ids not unique: %q %q", s.documents[0].ID, s.documents[1].ID)
	}
}

func TestAddWithEmbeddingsLengthMismatch(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "vectors.json"))
	err := s.AddWithEmbeddings([]Document{{Text: "a"}}, nil)
	if err == nil {
		t.Error("expected mismatch error")
	}
}

func TestSearchRanksByCosine(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "vectors.json"))
	err := s.AddWithEmbeddings(
		[]Document{{Text: "orthogonal"}, {Text: "aligned"}, {Text: "opposite"}},
		[][]float64{{0, 1}, {1, 0}, {-1, 0}},
	)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	matches := s.Search([]float64{1, 0}, 2)
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].Document.Text != "aligned" {
		t.Errorf("top match = %q", matches[0].Document.Text)
	}
	if math.Abs(matches[0].Similarity-1) > 1e-9 {
		t.Errorf("top similarity = %v, want 1", matches[0].Similarity)
	}
	if matches[1].Document.Text != "orthogonal" {
		t.Errorf("second match = %q", matches[1].Document.Text)
	}
}

func TestOpenCorruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Open(path)
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestClear(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "vectors.json"))
	s.Add("doc", nil)
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("len = %d after clear", s.Len())
	}
}
