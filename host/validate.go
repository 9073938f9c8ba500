package host

import (
	"github.com/nearbyte/kdvec"
)

// validateResource rejects resource if any item's embedding carries a
// non-finite (NaN or +/-Inf) component. This is the host-adapter boundary's
// InputShape check (spec.md §7): the bare engine never rejects on dimension
// or content (kdvec.Build, Index.Add, Index.Reindex all ingest
// unconditionally), so every entry point in this package that ingests a
// Resource validates it first. Remove (stateless and Handle) does not call
// it; see host.Remove.
func validateResource(op string, resource kdvec.Resource) error {
	for _, item := range resource.Embeddings {
		if kdvec.HasNonFinite(item.Embeddings) {
			return &kdvec.IndexError{Op: op, Err: kdvec.ErrInvalidDimension}
		}
	}
	return nil
}

// validateQuery applies the same check to a Search query's vector, when the
// query is an EmbeddingQuery.
func validateQuery(op string, query kdvec.Query) error {
	eq, ok := query.(kdvec.EmbeddingQuery)
	if !ok {
		return nil
	}
	if kdvec.HasNonFinite(eq.Vector) {
		return &kdvec.IndexError{Op: op, Err: kdvec.ErrInvalidDimension}
	}
	return nil
}
