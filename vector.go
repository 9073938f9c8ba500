package kdvec

import "math"

// Dim is the fixed embedding dimension the k-d tree is built over. It is a
// compile-time constant, not a configuration knob: the spec's non-goals
// exclude dynamic dimensionality.
const Dim = 768

// normalize pads a vector with trailing 0.0 or truncates it to exactly Dim
// elements. It is applied uniformly to ingested embeddings and to query
// vectors so the two always agree dimensionally. A nil or empty input
// normalizes to a Dim-length all-zero vector rather than erroring — per the
// spec, normalization cannot fail; IndexBuildError is reserved for a
// stricter variant that does not exist yet.
func normalize(vec []float32) [Dim]float32 {
	var out [Dim]float32
	n := len(vec)
	if n > Dim {
		n = Dim
	}
	copy(out[:n], vec[:n])
	return out
}

// HasNonFinite reports whether vec contains a NaN or +/-Inf component. It
// exists for the host-adapter boundary (spec.md §7: InputShape validation is
// a host concern, not an engine one) — the bare engine never calls this
// itself; host.Build, host.Add and host.Search call it before a vector ever
// reaches Build, Add or Search.
func HasNonFinite(vec []float32) bool {
	for _, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}
