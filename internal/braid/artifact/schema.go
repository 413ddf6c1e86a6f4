package artifact

import (
	"sort"

	"ananke/internal/constraint"
	"ananke/internal/ir"
)

// CompileSchema generates a JSON schema from structural constraints: one
// property per constraint (named after the constraint), with the
// `required` list being the union of required-property claims. Type
// conflicts between two constraints claiming the same property name are
// expected to already be resolved during conflict resolution; CompileSchema
// keeps the higher-priority claim if one somehow still slips through.
func CompileSchema(cs []constraint.Constraint) *ir.JSONSchema {
	if len(cs) == 0 {
		return nil
	}
	props := make(map[string]*ir.PropertySchema)
	winner := make(map[string]constraint.Constraint)
	var required []string
	seenRequired := make(map[string]bool)

	sorted := append([]constraint.Constraint(nil), cs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, c := range sorted {
		prev, exists := winner[c.Name]
		if exists && !isHigherPriority(c, prev) {
			continue
		}
		winner[c.Name] = c
		props[c.Name] = ir.NewStringSchema()
		if c.Severity == constraint.SeverityError && !seenRequired[c.Name] {
			seenRequired[c.Name] = true
			required = append(required, c.Name)
		}
	}

	sort.Strings(required)
	return &ir.JSONSchema{
		SchemaType:           "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: true,
	}
}

func isHigherPriority(a, b constraint.Constraint) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Confidence > b.Confidence
}
