// Package host adapts the kdvec engine for embedding in an external
// runtime: a WASM host, an RPC server, a CLI — anything that wants
// blob-in/blob-out semantics, or a single retained Index guarded for
// concurrent access, instead of talking to *kdvec.Index directly.
//
// Two surfaces are exposed. The stateless functions in this file take and
// return serialized snapshots, mirroring the bare function exports of the
// original engine's WASM bindings. Handle (handle.go) retains one Index
// behind a mutex for callers that would rather keep state host-side.
// Hooks (hooks.go) let a Handle notify an embedder of lifecycle events
// without the embedder reaching into engine internals; the stateless
// functions take no Hooks and fire none.
package host

import (
	"github.com/nearbyte/kdvec"
)

// Build validates resource, constructs a fresh Index from it, and
// immediately serializes the result, so the caller never holds a live
// *kdvec.Index across the host boundary.
func Build(resource kdvec.Resource) ([]byte, error) {
	if err := validateResource("Build", resource); err != nil {
		return nil, err
	}
	ix, err := kdvec.Build(resource)
	if err != nil {
		return nil, err
	}
	return ix.Serialize()
}

// Add validates resource, deserializes snapshot, applies resource with
// Index.Add, and returns the updated serialized snapshot.
func Add(snapshot []byte, resource kdvec.Resource) ([]byte, error) {
	if err := validateResource("Add", resource); err != nil {
		return nil, err
	}
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return nil, err
	}
	if err := ix.Add(resource); err != nil {
		return nil, err
	}
	return ix.Serialize()
}

// Remove deserializes snapshot, applies resource with Index.Remove, and
// returns the updated serialized snapshot alongside the removed-point
// count. Unlike Build/Add, a Remove request with a non-finite vector is not
// rejected: Remove only ever compares against points already in the tree,
// so an unvalidated vector here can at worst fail to match anything.
func Remove(snapshot []byte, resource kdvec.Resource) ([]byte, int, error) {
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return nil, 0, err
	}
	removed, err := ix.Remove(resource)
	if err != nil {
		return nil, 0, err
	}
	out, err := ix.Serialize()
	if err != nil {
		return nil, 0, err
	}
	return out, removed, nil
}

// Clear deserializes snapshot, clears it, and returns the updated
// serialized snapshot — an empty Index, not an error, for a malformed or
// nonexistent input would already have failed at Deserialize.
func Clear(snapshot []byte) ([]byte, error) {
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return nil, err
	}
	ix.Clear()
	return ix.Serialize()
}

// Size deserializes snapshot and returns its document count.
func Size(snapshot []byte) (int, error) {
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return 0, err
	}
	return ix.Size(), nil
}

// Search validates query, deserializes snapshot, and runs a
// k-nearest-neighbor query against it.
func Search(snapshot []byte, query kdvec.Query, k int) ([]kdvec.SearchResult, error) {
	if err := validateQuery("Search", query); err != nil {
		return nil, err
	}
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return nil, err
	}
	return ix.Search(query, k)
}
