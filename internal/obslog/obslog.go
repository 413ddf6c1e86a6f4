// Package obslog models partial-quality events: things that are recorded,
// not errors — a dropped constraint, an auto-resolved
// conflict, a broken dependency cycle, a timed-out oracle call, a deferred
// enforcement-bucket choice. It is the diagnostic sidecar attached to a
// ConstraintIR and surfaced across the FFI boundary as a readable array.
//
// Grounded on the teacher's internal/logging/audit.go: a tagged event type
// plus structured fields, generalized here from "facts for a Mangle query"
// to a plain in-memory diagnostic record a Go or C caller can read directly.
package obslog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// eventNamespace seeds the deterministic UUIDv5 used for event ids.
// Compile must produce byte-identical output given the same input and a
// fixed clock, so event ids are derived from their own content plus a
// sequence number rather than drawn from uuid.NewString()'s random source.
var eventNamespace = uuid.MustParse("8f14e45f-ceea-467e-9575-d2b3c1b0d3b7")

// Kind tags the category of a diagnostic event.
type Kind string

const (
	KindConstraintDropped  Kind = "constraint_dropped"
	KindConflictResolved   Kind = "conflict_resolved"
	KindCycleBroken        Kind = "cycle_broken"
	KindOracleTimeout      Kind = "oracle_timeout"
	KindOracleError        Kind = "oracle_error"
	KindBucketChoice       Kind = "bucket_choice"
	KindTokenMaskNarrowed  Kind = "token_mask_narrowed"
	KindHoleEmitted        Kind = "hole_emitted"
)

// Event is one diagnostic record.
type Event struct {
	ID          string
	Kind        Kind
	Timestamp   time.Time
	Message     string
	ConstraintID uint64 // 0 if not applicable
	OtherID     uint64 // second constraint id, for conflicts/cycles; 0 if n/a
}

// Events is an ordered, appendable collection of diagnostic events.
type Events []Event

// Record appends a new event of kind with message, stamping it with a fresh
// id. now is supplied by the caller rather than taken from time.Now directly
// so compile() stays easy to make deterministic in tests.
func (e *Events) Record(now time.Time, kind Kind, message string, constraintID, otherID uint64) {
	seq := len(*e)
	seed := fmt.Sprintf("%d|%s|%d|%s|%d|%d", seq, kind, now.UnixNano(), message, constraintID, otherID)
	*e = append(*e, Event{
		ID:           uuid.NewSHA1(eventNamespace, []byte(seed)).String(),
		Kind:         kind,
		Timestamp:    now,
		Message:      message,
		ConstraintID: constraintID,
		OtherID:      otherID,
	})
}

// ByKind filters events to a single kind.
func (e Events) ByKind(kind Kind) Events {
	var out Events
	for _, ev := range e {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// Since filters events at or after t.
func (e Events) Since(t time.Time) Events {
	var out Events
	for _, ev := range e {
		if !ev.Timestamp.Before(t) {
			out = append(out, ev)
		}
	}
	return out
}
