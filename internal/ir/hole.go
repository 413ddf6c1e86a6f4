package ir

import "time"

// Scale names the granularity at which a Hole applies.
type Scale string

const (
	ScaleExpression     Scale = "expression"
	ScaleStatement      Scale = "statement"
	ScaleBlock          Scale = "block"
	ScaleFunction       Scale = "function"
	ScaleModule         Scale = "module"
	ScaleSpecification  Scale = "specification"
)

// Location pinpoints where a Hole sits in the source a downstream engine
// is filling in: an origin file and line, the way a linter reports one.
type Location struct {
	File string
	Line int
}

// Hole marks a constraint Braid could not compile into any deterministic
// artifact: a semantic constraint whose regex cannot be derived
// deterministically, with no matching artifact compiler claiming it,
// surfaces here at ScaleExpression rather than being silently dropped.
// A downstream engine sees Holes as "here is a place enforcement is known
// to be incomplete," distinct from Diagnostics, which are about the
// compile process rather than the artifact's coverage.
//
// Produced and annotated by Braid for round-trip tooling; Braid is not
// itself the consumer that fills a Hole in, only the producer that
// records where one exists.
type Hole struct {
	ID                 string
	ConstraintID       uint64
	Scale              Scale
	Origin             string
	ResolutionStrategy string
	Confidence         float64
	Location           Location
	Provenance         string
	CurrentFill        *string
	Reason             string
	CreatedAt          time.Time
}
