package kdvec

import (
	"github.com/google/uuid"

	"github.com/nearbyte/kdvec/kdtree"
)

// Index is the engine's one mutable type: a k-d tree of embeddings joined
// to a document table by Fingerprint. Its mutations — Build, Add, Reindex,
// Remove, Clear — keep the two structures coherent:
//
//  1. every point in the tree has a corresponding table entry, except
//     orphan points that Remove leaves behind (see Remove);
//  2. every table entry's fingerprint appears at least once in the tree;
//  3. the table holds at most one entry per fingerprint;
//  4. the tree may hold several points with the same fingerprint if the
//     caller submits the same document more than once — Remove deletes
//     only those whose vector also matches exactly;
//  5. Size() reports the table's length, not the tree's point count.
//
// An Index is not safe for concurrent use. Callers needing that guarantee
// reach for github.com/nearbyte/kdvec/host.Handle, which wraps one Index in
// a mutex.
type Index struct {
	tree       *kdtree.Tree
	table      table
	logger     Logger
	instanceID uuid.UUID
}

// Build constructs a fresh Index from a Resource batch. An empty Resource
// produces a valid, empty Index rather than an error. instanceID is
// generated once here and carried for the Index's whole lifetime — Reindex
// preserves it and Serialize/Deserialize round-trip it, so it remains a
// stable diagnostic handle for this logical Index rather than a new value
// on every snapshot.
func Build(resource Resource) (*Index, error) {
	ix := &Index{
		tree:       kdtree.New(),
		table:      newTable(),
		logger:     NopLogger(),
		instanceID: uuid.New(),
	}
	ix.ingest(resource)
	return ix, nil
}

// SetLogger attaches a Logger to ix; a nil l installs NopLogger. A freshly
// Built or Deserialized Index defaults to NopLogger. The zero-value Index
// has no Logger and no tree, and is not usable.
func (ix *Index) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger()
	}
	ix.logger = l
}

// Add incrementally ingests resource into ix. For each item whose
// fingerprint already has a table entry, the table entry is overwritten and
// a new tree point is still inserted — existing tree points for that
// fingerprint are left in place, per Add's additive (non-replacing)
// contract; use Reindex for a full replace.
func (ix *Index) Add(resource Resource) error {
	ix.ingest(resource)
	return nil
}

// ingest adds every item in resource to the tree and table unconditionally.
// It never rejects on embedding shape or content — per spec.md §7,
// InputShape validation is a host-adapter concern (see host.Build/host.Add),
// not the bare engine's.
func (ix *Index) ingest(resource Resource) {
	for _, item := range resource.Embeddings {
		point := kdtree.Point(normalize(item.Embeddings))
		fp := Fingerprint(item.Document())
		ix.table.put(fp, item.Document())
		ix.tree.Add(point, fp)
	}
	ix.logger.Debug("ingested resource", "count", len(resource.Embeddings))
}

// Reindex discards the current tree and table and rebuilds them from
// resource, as if ix had just been Built. It is the supplemented
// full-replace operation mirrored from the original engine's index() call.
// ix's instanceID and logger survive the replace — Reindex replaces an
// Index's contents, not its identity.
func (ix *Index) Reindex(resource Resource) error {
	fresh, err := Build(resource)
	if err != nil {
		return wrapError("Reindex", err)
	}
	fresh.logger = ix.logger
	fresh.instanceID = ix.instanceID
	*ix = *fresh
	return nil
}

// Remove deletes, for each item in resource, every tree point whose vector
// and fingerprint both exactly match that item, and unconditionally deletes
// the item's table entry. It returns the total number of tree points
// removed. Removing an item that was never added is a no-op for that item,
// not an error.
//
// If the same fingerprint was ever Added under two different vectors, only
// the vector named here is removed from the tree — the other becomes an
// orphan point that Search silently skips (it no longer resolves to a table
// entry). This is a deliberate tradeoff, not a bug: exact (point, payload)
// removal is cheap and predictable; reconciling every same-fingerprint
// point on every Remove is not.
func (ix *Index) Remove(resource Resource) (int, error) {
	removed := 0
	for _, item := range resource.Embeddings {
		point := kdtree.Point(normalize(item.Embeddings))
		fp := Fingerprint(item.Document())
		removed += ix.tree.Remove(point, fp)
		ix.table.delete(fp)
	}
	ix.logger.Debug("removed resource", "points_removed", removed)
	return removed, nil
}

// Clear replaces ix's tree and table with empty ones. Unlike Remove, it
// never walks the existing tree — it is a full discard, same as Reindex
// with an empty Resource.
func (ix *Index) Clear() {
	ix.tree = kdtree.New()
	ix.table = newTable()
	ix.logger.Debug("cleared index")
}

// Size returns the number of documents in the table, which is the number of
// distinct fingerprints currently indexed — not the number of points in the
// tree, which may be larger (duplicate submissions) or include points whose
// fingerprint has since been removed (orphans).
func (ix *Index) Size() int {
	return ix.table.size()
}

// Search runs a k-nearest-neighbor query and joins each result back to its
// Document, in nearest-first order. Tree points whose fingerprint no longer
// has a table entry (orphans left by Remove) are silently skipped, so
// Search may return fewer than k results even when the tree holds at least
// k points.
//
// An empty query vector is not an error: like any other embedding it is
// normalized (zero-padded to Dim) before the search runs, per normalize's
// contract. Rejecting on embedding shape or content, when wanted, is a
// host-adapter concern (see host.Search), not the bare engine's.
func (ix *Index) Search(query Query, k int) ([]SearchResult, error) {
	eq, ok := query.(EmbeddingQuery)
	if !ok {
		return nil, wrapError("Search", ErrInternal)
	}

	point := kdtree.Point(normalize(eq.Vector))
	neighbors := ix.tree.NearestN(point, k)

	results := make([]SearchResult, 0, len(neighbors))
	for _, n := range neighbors {
		doc, ok := ix.table.get(n.Payload)
		if !ok {
			continue
		}
		results = append(results, SearchResult{
			Document:        doc,
			SimilarityScore: score(n.Distance),
		})
	}
	return results, nil
}
