package constraint

import (
	"fmt"
	"hash/fnv"
)

// DeriveID computes a stable 64-bit id for a constraint from its
// recognizer-visible identity (namespace, name, origin). Clew recognizers
// use this instead of a mutable counter so that extraction stays
// deterministic across repeated invocations without any shared state
// between calls. namespace is typically a Kind or a Source tag (see
// SourceTag) — anything that scopes name/origin to one recognizer family
// so two unrelated recognizers never collide.
func DeriveID(namespace, name, originFile string, originLine int, salt string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%d|%s", namespace, name, originFile, originLine, salt)
	return h.Sum64()
}
