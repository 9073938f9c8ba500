package kdvec

import (
	"testing"

	"github.com/nearbyte/kdvec/kdtree"
)

func vecItem(id string, v ...float32) ResourceItem {
	return ResourceItem{ID: id, Title: id, URL: "http://" + id, Embeddings: v}
}

func TestBuildEmpty(t *testing.T) {
	ix, err := Build(Resource{})
	if err != nil {
		t.Fatalf("Build(empty) error = %v", err)
	}
	if got := ix.Size(); got != 0 {
		t.Fatalf("Size() = %d, want 0", got)
	}
}

func TestBuildAndSearch(t *testing.T) {
	resource := Resource{Embeddings: []ResourceItem{
		vecItem("a", 1, 0, 0),
		vecItem("b", 0, 1, 0),
		vecItem("c", 0.9, 0.1, 0),
	}}
	ix, err := Build(resource)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := ix.Size(); got != 3 {
		t.Fatalf("Size() = %d, want 3", got)
	}

	results, err := ix.Search(EmbeddingQuery{Vector: []float32{1, 0, 0}}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() len = %d, want 2", len(results))
	}
	if results[0].Document.ID != "a" {
		t.Fatalf("Search()[0].ID = %q, want %q", results[0].Document.ID, "a")
	}
	if results[0].SimilarityScore != 1.0 {
		t.Fatalf("Search()[0].SimilarityScore = %v, want 1.0 (exact match)", results[0].SimilarityScore)
	}
	for _, r := range results {
		if r.SimilarityScore <= 0 || r.SimilarityScore > 1 {
			t.Fatalf("SimilarityScore %v out of (0,1] bounds", r.SimilarityScore)
		}
	}
}

func TestSearchEmptyQueryIsZeroVector(t *testing.T) {
	ix, _ := Build(Resource{Embeddings: []ResourceItem{vecItem("a", 1, 0, 0)}})
	results, err := ix.Search(EmbeddingQuery{Vector: nil}, 5)
	if err != nil {
		t.Fatalf("Search() with empty vector: want no error, got %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "a" {
		t.Fatalf("Search() with empty vector = %+v, want the single indexed doc", results)
	}
}

func TestAddOverwritesDocumentButKeepsOldPoint(t *testing.T) {
	ix, _ := Build(Resource{Embeddings: []ResourceItem{vecItem("a", 1, 0, 0)}})
	if err := ix.Add(Resource{Embeddings: []ResourceItem{vecItem("a", 0, 1, 0)}}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := ix.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1 (same fingerprint overwrites table entry)", got)
	}
	if got := ix.tree.Size(); got != 2 {
		t.Fatalf("tree.Size() = %d, want 2 (old point kept alongside the new one)", got)
	}

	results, err := ix.Search(EmbeddingQuery{Vector: []float32{0, 1, 0}}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 || results[0].Document.ID != "a" {
		t.Fatalf("Search() after Add = %+v, want to find doc a", results)
	}
}

func TestReindexFullyReplaces(t *testing.T) {
	ix, _ := Build(Resource{Embeddings: []ResourceItem{
		vecItem("a", 1, 0, 0),
		vecItem("b", 0, 1, 0),
	}})
	if err := ix.Reindex(Resource{Embeddings: []ResourceItem{vecItem("c", 0, 0, 1)}}); err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}
	if got := ix.Size(); got != 1 {
		t.Fatalf("Size() after Reindex = %d, want 1", got)
	}
	results, _ := ix.Search(EmbeddingQuery{Vector: []float32{1, 0, 0}}, 5)
	for _, r := range results {
		if r.Document.ID == "a" || r.Document.ID == "b" {
			t.Fatalf("Reindex did not discard old entries, found %q", r.Document.ID)
		}
	}
}

func TestReindexPreservesInstanceID(t *testing.T) {
	ix, _ := Build(Resource{Embeddings: []ResourceItem{vecItem("a", 1, 0, 0)}})
	want := ix.instanceID
	if err := ix.Reindex(Resource{Embeddings: []ResourceItem{vecItem("b", 0, 1, 0)}}); err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}
	if ix.instanceID != want {
		t.Fatalf("instanceID changed across Reindex(): got %v, want %v", ix.instanceID, want)
	}
}

func TestRemoveExactMatch(t *testing.T) {
	item := vecItem("a", 1, 0, 0)
	ix, _ := Build(Resource{Embeddings: []ResourceItem{item, vecItem("b", 0, 1, 0)}})

	removed, err := ix.Remove(Resource{Embeddings: []ResourceItem{item}})
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("Remove() removed = %d, want 1", removed)
	}
	if got := ix.Size(); got != 1 {
		t.Fatalf("Size() after Remove = %d, want 1", got)
	}

	results, _ := ix.Search(EmbeddingQuery{Vector: []float32{1, 0, 0}}, 5)
	for _, r := range results {
		if r.Document.ID == "a" {
			t.Fatal("Remove() did not remove document a")
		}
	}
}

func TestRemoveNoMatchIsNoop(t *testing.T) {
	ix, _ := Build(Resource{Embeddings: []ResourceItem{vecItem("a", 1, 0, 0)}})
	removed, err := ix.Remove(Resource{Embeddings: []ResourceItem{vecItem("missing", 5, 5, 5)}})
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if removed != 0 {
		t.Fatalf("Remove() removed = %d, want 0", removed)
	}
	if got := ix.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1 (unaffected)", got)
	}
}

func TestClear(t *testing.T) {
	ix, _ := Build(Resource{Embeddings: []ResourceItem{vecItem("a", 1, 0, 0)}})
	ix.Clear()
	if got := ix.Size(); got != 0 {
		t.Fatalf("Size() after Clear = %d, want 0", got)
	}
	results, err := ix.Search(EmbeddingQuery{Vector: []float32{1, 0, 0}}, 5)
	if err != nil {
		t.Fatalf("Search() after Clear error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search() after Clear = %+v, want empty", results)
	}
}

func TestSearchSkipsOrphanedPoints(t *testing.T) {
	item := vecItem("a", 1, 0, 0)
	ix, _ := Build(Resource{Embeddings: []ResourceItem{item}})

	// Add a second point under the same fingerprint/document, then remove
	// only the original vector by value — the new point becomes an orphan:
	// its fingerprint no longer has a table entry.
	ix.tree.Add(kdtree.Point(normalizeForTest([]float32{0, 0, 1})), Fingerprint(item.Document()))
	if _, err := ix.Remove(Resource{Embeddings: []ResourceItem{item}}); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	results, err := ix.Search(EmbeddingQuery{Vector: []float32{0, 0, 1}}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search() returned orphaned point as a result: %+v", results)
	}
}

func normalizeForTest(v []float32) [Dim]float32 {
	return normalize(v)
}
