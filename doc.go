// Package kdvec is an in-memory k-nearest-neighbor index for small-to-medium
// document collections, built for embedding in client-side or edge runtimes
// with tight memory ceilings.
//
// A caller supplies documents paired with fixed-dimension (768) float32
// embeddings; the index answers k-nearest-neighbor queries under squared
// Euclidean distance and returns the matched documents with a bounded
// similarity score. There is no disk-backed storage, no background
// goroutines, and no concurrent mutation of a single Index — all of that is
// the caller's responsibility (see the package-level concurrency note on
// Index).
//
// # Quick Start
//
//	resource := kdvec.Resource{Embeddings: []kdvec.ResourceItem{
//	    {ID: "a", Title: "A", URL: "http://a", Embeddings: []float32{1, 0, 0}},
//	}}
//	ix, err := kdvec.Build(resource)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := ix.Search(kdvec.EmbeddingQuery{Vector: []float32{1, 0, 0}}, 5)
//
// # Mutation
//
// Build, Add, Remove, Clear and Reindex keep the k-d tree and the document
// table coherent; see Index for the invariants they preserve.
//
// # Serialization
//
// Serialize/Deserialize round-trip an Index through a versioned,
// human-readable JSON snapshot (snapshot.go). The format is not guaranteed
// stable across kdvec versions; Deserialize rejects a mismatched schema
// version with ErrDeserialize.
//
// # Host bindings
//
// The github.com/nearbyte/kdvec/host subpackage exposes both a stateless
// (blob-in/blob-out) and a stateful (retained Index) surface for embedding
// this engine in an external runtime, plus optional lifecycle callbacks.
package kdvec
