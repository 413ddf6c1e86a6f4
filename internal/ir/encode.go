package ir

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonSchemaWire is the exact wire shape for json_schema.
type jsonSchemaWire struct {
	SchemaType           string                      `json:"schema_type"`
	Properties           map[string]*propertyWire    `json:"properties"`
	Required             []string                    `json:"required"`
	AdditionalProperties bool                        `json:"additional_properties"`
}

type propertyWire struct {
	Type       string                   `json:"type"`
	Enum       []string                 `json:"enum,omitempty"`
	Items      *propertyWire            `json:"items,omitempty"`
	Properties map[string]*propertyWire `json:"properties,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

func toPropertyWire(p *PropertySchema) *propertyWire {
	if p == nil {
		return nil
	}
	w := &propertyWire{Type: p.Type, Enum: p.Enum, Required: p.Required}
	if p.Items != nil {
		w.Items = toPropertyWire(p.Items)
	}
	if p.Properties != nil {
		w.Properties = make(map[string]*propertyWire, len(p.Properties))
		for k, v := range p.Properties {
			w.Properties[k] = toPropertyWire(v)
		}
	}
	return w
}

// MarshalJSON encodes JSONSchema into its wire shape.
func (s *JSONSchema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	w := jsonSchemaWire{
		SchemaType:           s.SchemaType,
		Required:             s.Required,
		AdditionalProperties: s.AdditionalProperties,
		Properties:           make(map[string]*propertyWire, len(s.Properties)),
	}
	for k, v := range s.Properties {
		w.Properties[k] = toPropertyWire(v)
	}
	return json.Marshal(w)
}

// grammarWire is the wire shape for grammar: {start_symbol, rules}. Rules
// flatten each Production's RHS symbols to their plain text; the richer
// in-memory metadata (Doc, SourceConstraintID) is an accepted loss on the
// wire, kept only for in-process debugging and EBNF rendering.
type grammarWire struct {
	StartSymbol string      `json:"start_symbol"`
	Rules       []ruleWire  `json:"rules"`
}

type ruleWire struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

// MarshalJSON encodes Grammar into its wire shape.
func (g *Grammar) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	w := grammarWire{StartSymbol: g.StartSymbol, Rules: make([]ruleWire, 0, len(g.Productions))}
	for _, p := range g.Productions {
		rhs := make([]string, len(p.RHS))
		for i, sym := range p.RHS {
			rhs[i] = sym.String()
		}
		w.Rules = append(w.Rules, ruleWire{LHS: p.LHS, RHS: rhs})
	}
	return json.Marshal(w)
}

// EncodeRegexPattern renders a RegexPattern as the wire string: either
// "pattern" with no flags, or "pattern|FLAGS:flags" when flags is non-empty.
func EncodeRegexPattern(p RegexPattern) string {
	if p.Flags == "" {
		return p.Pattern
	}
	return fmt.Sprintf("%s|FLAGS:%s", p.Pattern, p.Flags)
}

// DecodeRegexPattern parses the wire string back into a RegexPattern.
func DecodeRegexPattern(s string) RegexPattern {
	if idx := strings.LastIndex(s, "|FLAGS:"); idx >= 0 {
		return RegexPattern{Pattern: s[:idx], Flags: s[idx+len("|FLAGS:"):]}
	}
	return RegexPattern{Pattern: s}
}

// EncodeRegexPatterns renders a whole slice using EncodeRegexPattern.
func EncodeRegexPatterns(patterns []RegexPattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = EncodeRegexPattern(p)
	}
	return out
}
