package ir

// JSONSchema is the structural-enforcement artifact Braid compiles for the
// decoder to validate generated code against.
// Grounded on the teacher's internal/mangle/synth schema builder
// (buildSchema/schemaObject/schemaArray in internal/mangle/synth/schema.go),
// generalized from "schema describing a Mangle synthesis payload" to
// "schema describing the shape of code Braid wants emitted".
type JSONSchema struct {
	SchemaType           string
	Properties           map[string]*PropertySchema
	Required             []string
	AdditionalProperties bool
}

// PropertySchema is a single named property's shape. It is recursive
// (Items/Properties) but intentionally shallow compared to a full JSON
// Schema implementation — Braid only ever needs object/array/string/
// number/integer/boolean/enum, the same restricted vocabulary the
// teacher's synth schema builder uses.
type PropertySchema struct {
	Type       string // object, array, string, number, integer, boolean
	Enum       []string
	Items      *PropertySchema          // when Type == "array"
	Properties map[string]*PropertySchema // when Type == "object"
	Required   []string                 // when Type == "object"
}

// NewObjectSchema is a small builder mirroring the teacher's schemaObject
// helper.
func NewObjectSchema(props map[string]*PropertySchema, required ...string) *PropertySchema {
	if props == nil {
		props = map[string]*PropertySchema{}
	}
	return &PropertySchema{Type: "object", Properties: props, Required: required}
}

// NewArraySchema mirrors the teacher's schemaArray helper.
func NewArraySchema(items *PropertySchema) *PropertySchema {
	return &PropertySchema{Type: "array", Items: items}
}

// NewStringSchema mirrors the teacher's schemaString helper.
func NewStringSchema() *PropertySchema { return &PropertySchema{Type: "string"} }

// NewEnumSchema mirrors the teacher's schemaEnum helper.
func NewEnumSchema(values ...string) *PropertySchema {
	return &PropertySchema{Type: "string", Enum: values}
}
