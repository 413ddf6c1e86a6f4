package artifact

import (
	"ananke/internal/constraint"
	"ananke/internal/ir"
)

// CompileTokenMasks unions the allowed/forbidden token ids enumerated by
// performance and security constraints. The union is plain
// concatenation-with-dedup; reconciling an allowed/forbidden overlap
// (forbidden wins) is the caller's job so it can record the narrowing as a
// diagnostic event rather than silently losing it here.
func CompileTokenMasks(cs []constraint.Constraint) *ir.TokenMasks {
	var allowed, forbidden []uint32
	seenA, seenF := map[uint32]bool{}, map[uint32]bool{}
	for _, c := range cs {
		for _, id := range c.AllowedTokens {
			if !seenA[id] {
				seenA[id] = true
				allowed = append(allowed, id)
			}
		}
		for _, id := range c.ForbiddenTokens {
			if !seenF[id] {
				seenF[id] = true
				forbidden = append(forbidden, id)
			}
		}
	}
	if allowed == nil && forbidden == nil {
		return nil
	}
	return &ir.TokenMasks{Allowed: allowed, Forbidden: forbidden}
}
