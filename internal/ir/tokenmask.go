package ir

// TokenMasks is the lexical-enforcement artifact: two sets of vocabulary
// token ids, allowed and forbidden, keyed by the decoder's own tokenizer.
// Ananke never resolves token text to ids itself — ids
// arrive already resolved from a caller-supplied vocabulary mapping, so
// this type is a thin, index-free set pair.
type TokenMasks struct {
	Allowed   []uint32
	Forbidden []uint32
}

// Intersection returns the token ids present in both Allowed and Forbidden.
// A non-empty result means two constraints disagree on the same token and
// Braid's conflict-resolution phase failed to separate them: Allowed and
// Forbidden must always be disjoint in a compiled ConstraintIR.
func (m *TokenMasks) Intersection() []uint32 {
	if m == nil || len(m.Allowed) == 0 || len(m.Forbidden) == 0 {
		return nil
	}
	forbidden := make(map[uint32]bool, len(m.Forbidden))
	for _, id := range m.Forbidden {
		forbidden[id] = true
	}
	var out []uint32
	for _, id := range m.Allowed {
		if forbidden[id] {
			out = append(out, id)
		}
	}
	return out
}

// Merge folds other into m, keeping masks additive across constraints that
// share a scale. Forbidden wins a direct id collision: it is easier for a downstream
// engine to recover from an overly strict mask than an overly permissive
// one, so Merge drops any id from the merged Allowed set that appears in
// either side's Forbidden.
func (m *TokenMasks) Merge(other *TokenMasks) *TokenMasks {
	if m == nil {
		return other
	}
	if other == nil {
		return m
	}
	forbidden := make(map[uint32]bool, len(m.Forbidden)+len(other.Forbidden))
	for _, id := range m.Forbidden {
		forbidden[id] = true
	}
	for _, id := range other.Forbidden {
		forbidden[id] = true
	}

	seenAllowed := make(map[uint32]bool)
	var allowed []uint32
	for _, id := range append(append([]uint32{}, m.Allowed...), other.Allowed...) {
		if forbidden[id] || seenAllowed[id] {
			continue
		}
		seenAllowed[id] = true
		allowed = append(allowed, id)
	}

	merged := &TokenMasks{Allowed: allowed}
	for id := range forbidden {
		merged.Forbidden = append(merged.Forbidden, id)
	}
	return merged
}
