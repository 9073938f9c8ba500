package host

import (
	"sync"

	"github.com/nearbyte/kdvec"
)

// Handle retains one *kdvec.Index behind a mutex, so multiple goroutines
// can share it safely even though kdvec.Index itself is not safe for
// concurrent use. This is the only place in the module that takes a lock
// around the engine — the engine stays single-threaded and lock-free by
// design; Handle is the boundary that makes it safe to embed in a
// multi-goroutine host.
type Handle struct {
	mu    sync.Mutex
	index *kdvec.Index
	hooks Hooks
}

// NewHandle wraps an existing Index in a Handle. hooks may be the zero
// value, in which case no lifecycle callback ever fires.
func NewHandle(ix *kdvec.Index, hooks Hooks) *Handle {
	h := &Handle{index: ix, hooks: hooks}
	h.hooks.init()
	return h
}

// BuildHandle validates resource, constructs a fresh Index, and wraps it in
// a new Handle.
func BuildHandle(resource kdvec.Resource, hooks Hooks) (*Handle, error) {
	if err := validateResource("Build", resource); err != nil {
		return nil, err
	}
	ix, err := kdvec.Build(resource)
	if err != nil {
		return nil, err
	}
	return NewHandle(ix, hooks), nil
}

// Add validates resource and applies it to the retained Index under lock.
func (h *Handle) Add(resource kdvec.Resource) error {
	if err := validateResource("Add", resource); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.hooks.add()
	return h.index.Add(resource)
}

// Reindex validates resource and fully replaces the retained Index's
// contents under lock.
func (h *Handle) Reindex(resource kdvec.Resource) error {
	if err := validateResource("Reindex", resource); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.hooks.index()
	return h.index.Reindex(resource)
}

// Remove deletes matching entries from the retained Index under lock.
func (h *Handle) Remove(resource kdvec.Resource) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.hooks.remove()
	return h.index.Remove(resource)
}

// Clear empties the retained Index under lock.
func (h *Handle) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.hooks.clear()
	h.index.Clear()
}

// Size returns the retained Index's document count under lock.
func (h *Handle) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index.Size()
}

// Search validates query and runs it against the retained Index under lock.
func (h *Handle) Search(query kdvec.Query, k int) ([]kdvec.SearchResult, error) {
	if err := validateQuery("Search", query); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.hooks.search()
	return h.index.Search(query, k)
}

// Serialize snapshots the retained Index under lock.
func (h *Handle) Serialize() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.hooks.serialize()
	return h.index.Serialize()
}

// Deserialize constructs a new Handle around the Index deserialized from
// snapshot. OnInit fires as for NewHandle, then OnDeserialize.
func Deserialize(snapshot []byte, hooks Hooks) (*Handle, error) {
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return nil, err
	}
	h := NewHandle(ix, hooks)
	h.hooks.deserialize()
	return h, nil
}

// LoadSnapshot replaces the retained Index with one deserialized from
// snapshot, under lock. On error the Handle retains its previous Index
// unchanged.
func (h *Handle) LoadSnapshot(snapshot []byte) error {
	ix, err := kdvec.Deserialize(snapshot)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = ix
	h.hooks.deserialize()
	return nil
}
