package kdvec

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/nearbyte/kdvec/kdtree"
)

// schemaVersion is bumped whenever SnapshotEnvelope's shape changes in a way
// that breaks old snapshots. Deserialize refuses to load a mismatched
// version rather than guess at a migration.
const schemaVersion = "kdvec.v1"

// SnapshotEnvelope is the versioned, JSON-serializable form of an Index. It
// is intentionally flat and human-readable rather than a dump of internal
// tree node structure: Deserialize rebuilds the tree from scratch by
// re-adding every point through the ordinary Add path, which is simpler
// than encoding nodes. The rebuilt tree's shape depends on the order the
// points are re-added; no separate balancing step runs.
type SnapshotEnvelope struct {
	SchemaVersion string              `json:"schema_version"`
	InstanceID    uuid.UUID           `json:"instance_id"`
	Points        []snapshotPoint     `json:"points"`
	Documents     map[string]Document `json:"documents"` // keyed by decimal fingerprint
}

type snapshotPoint struct {
	Fingerprint string    `json:"fingerprint"` // decimal uint64, for JSON-number safety
	Vector      []float32 `json:"vector"`
}

// Serialize captures ix's full state — every tree point and every table
// document — as a versioned JSON blob.
func (ix *Index) Serialize() ([]byte, error) {
	env := SnapshotEnvelope{
		SchemaVersion: schemaVersion,
		InstanceID:    ix.instanceID,
		Documents:     make(map[string]Document, ix.table.size()),
	}

	for fp, doc := range ix.table {
		env.Documents[fpKey(fp)] = doc
	}

	entries := ix.tree.Entries()
	env.Points = make([]snapshotPoint, len(entries))
	for i, e := range entries {
		env.Points[i] = snapshotPoint{
			Fingerprint: fpKey(e.Payload),
			Vector:      e.Point[:],
		}
	}

	blob, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, wrapError("Serialize", err)
	}
	return blob, nil
}

// Deserialize parses a blob produced by Serialize back into an Index. It
// rejects a blob whose schema version does not match the version this
// package writes, wrapping ErrDeserialize, rather than attempt a partial or
// best-effort load.
func Deserialize(blob []byte) (*Index, error) {
	var env SnapshotEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, wrapError("Deserialize", ErrDeserialize)
	}
	if env.SchemaVersion != schemaVersion {
		return nil, wrapError("Deserialize", ErrDeserialize)
	}

	ix := &Index{
		tree:       kdtree.New(),
		table:      newTable(),
		logger:     NopLogger(),
		instanceID: env.InstanceID,
	}
	for key, doc := range env.Documents {
		fp, err := parseFPKey(key)
		if err != nil {
			return nil, wrapError("Deserialize", ErrDeserialize)
		}
		ix.table.put(fp, doc)
	}
	for _, p := range env.Points {
		fp, err := parseFPKey(p.Fingerprint)
		if err != nil {
			return nil, wrapError("Deserialize", ErrDeserialize)
		}
		ix.tree.Add(kdtree.Point(normalize(p.Vector)), fp)
	}
	return ix, nil
}

// fpKey renders a fingerprint as a decimal string: uint64 values above
// 2^53 are not exactly representable as a JSON number, so fingerprints are
// carried as strings throughout the envelope.
func fpKey(fp uint64) string {
	return strconv.FormatUint(fp, 10)
}

func parseFPKey(key string) (uint64, error) {
	return strconv.ParseUint(key, 10, 64)
}
