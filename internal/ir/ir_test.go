package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintIR_IsEmpty(t *testing.T) {
	var ir ConstraintIR
	assert.True(t, ir.IsEmpty())

	ir.Priority = 1
	assert.False(t, ir.IsEmpty())
}

func TestConstraintIR_Validate_TokenMaskOverlap(t *testing.T) {
	ir := ConstraintIR{TokenMasks: &TokenMasks{Allowed: []uint32{1, 2}, Forbidden: []uint32{2}}}
	err := ir.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_masks")
}

func TestConstraintIR_Validate_GrammarMissingStart(t *testing.T) {
	g := &Grammar{StartSymbol: "stmt", Productions: []Production{{LHS: "expr", RHS: []Symbol{Terminal("x")}}}}
	ir := ConstraintIR{Grammar: g}
	err := ir.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start symbol")
}

func TestConstraintIR_Validate_SchemaRequiredMissing(t *testing.T) {
	schema := &JSONSchema{
		SchemaType: "object",
		Properties: map[string]*PropertySchema{"name": NewStringSchema()},
		Required:   []string{"missing"},
	}
	ir := ConstraintIR{JSONSchema: schema}
	err := ir.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required property")
}

func TestConstraintIR_Validate_Clean(t *testing.T) {
	g := &Grammar{StartSymbol: "stmt"}
	g.AddAlternative("stmt", []Symbol{Terminal("return"), Ref("expr")}, 1)
	ir := ConstraintIR{
		Grammar:    g,
		TokenMasks: &TokenMasks{Allowed: []uint32{1}, Forbidden: []uint32{2}},
		JSONSchema: &JSONSchema{
			SchemaType: "object",
			Properties: map[string]*PropertySchema{"name": NewStringSchema()},
			Required:   []string{"name"},
		},
	}
	assert.NoError(t, ir.Validate())
}

func TestTokenMasks_Intersection(t *testing.T) {
	m := &TokenMasks{Allowed: []uint32{1, 2, 3}, Forbidden: []uint32{3, 4}}
	assert.Equal(t, []uint32{3}, m.Intersection())

	var empty *TokenMasks
	assert.Nil(t, empty.Intersection())
}

func TestTokenMasks_Merge(t *testing.T) {
	a := &TokenMasks{Allowed: []uint32{1, 2}, Forbidden: []uint32{9}}
	b := &TokenMasks{Allowed: []uint32{2, 3}, Forbidden: []uint32{1}}
	merged := a.Merge(b)

	assert.ElementsMatch(t, []uint32{2, 3}, merged.Allowed)
	assert.ElementsMatch(t, []uint32{9, 1}, merged.Forbidden)
}

func TestGrammar_EBNF(t *testing.T) {
	g := &Grammar{StartSymbol: "stmt"}
	g.AddAlternative("stmt", []Symbol{Ref("expr")}, 1)
	g.AddAlternative("stmt", []Symbol{Terminal("pass")}, 2)

	out := g.EBNF()
	assert.Contains(t, out, "stmt ::= expr | \"pass\"")
}

func TestGrammar_MarshalJSON_WireShape(t *testing.T) {
	g := &Grammar{StartSymbol: "stmt"}
	g.AddAlternative("stmt", []Symbol{Terminal("return"), Ref("expr")}, 1)

	raw, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "stmt", decoded["start_symbol"])
	rules, ok := decoded["rules"].([]interface{})
	require.True(t, ok)
	require.Len(t, rules, 1)
	rule := rules[0].(map[string]interface{})
	assert.Equal(t, "stmt", rule["lhs"])
	assert.Equal(t, []interface{}{"return", "expr"}, rule["rhs"])
}

func TestJSONSchema_MarshalJSON_WireShape(t *testing.T) {
	s := &JSONSchema{
		SchemaType:           "object",
		Properties:           map[string]*PropertySchema{"name": NewStringSchema()},
		Required:             []string{"name"},
		AdditionalProperties: false,
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "object", decoded["schema_type"])
	assert.Equal(t, []interface{}{"name"}, decoded["required"])
	assert.Equal(t, false, decoded["additional_properties"])
}

func TestEncodeDecodeRegexPattern(t *testing.T) {
	p := RegexPattern{Pattern: `^[a-z]+$`, Flags: "i"}
	wire := EncodeRegexPattern(p)
	assert.Equal(t, `^[a-z]+$|FLAGS:i`, wire)

	decoded := DecodeRegexPattern(wire)
	assert.Equal(t, p, decoded)

	noFlags := RegexPattern{Pattern: `\d+`}
	assert.Equal(t, `\d+`, EncodeRegexPattern(noFlags))
	assert.Equal(t, noFlags, DecodeRegexPattern(`\d+`))
}
