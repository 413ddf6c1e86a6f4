package ir

// Grammar is the syntactic-enforcement artifact: a context-free grammar
// with a start symbol and an ordered list of productions.
type Grammar struct {
	StartSymbol string
	Productions []Production
}

// Production is one `lhs -> rhs*` rule.
type Production struct {
	LHS string
	RHS []Symbol

	// SourceConstraintID and Doc are richer metadata than the FFI wire
	// shape carries: useful for in-process debugging and the EBNF
	// pretty-printer below, dropped when encoding to the JSON wire shape.
	SourceConstraintID uint64
	Doc                string
}

// Symbol is either a literal terminal or a reference to another production.
type Symbol struct {
	Terminal bool
	Text     string // literal token text, when Terminal
	Ref      string // production name, when !Terminal
}

// Terminal builds a literal-token symbol.
func Terminal(text string) Symbol { return Symbol{Terminal: true, Text: text} }

// Ref builds a non-terminal reference symbol.
func Ref(name string) Symbol { return Symbol{Terminal: false, Ref: name} }

func (s Symbol) String() string {
	if s.Terminal {
		return s.Text
	}
	return s.Ref
}

func (g *Grammar) hasProduction(name string) bool {
	for _, p := range g.Productions {
		if p.LHS == name {
			return true
		}
	}
	return false
}

// AddAlternative appends rhs as a new production for lhs: grammar
// productions that share a non-terminal are merged by alternation rather
// than one overwriting the other.
func (g *Grammar) AddAlternative(lhs string, rhs []Symbol, sourceID uint64) {
	g.Productions = append(g.Productions, Production{LHS: lhs, RHS: rhs, SourceConstraintID: sourceID})
}

// EBNF renders a human-readable approximation of the grammar, grouping
// alternatives for the same LHS on one line. This is supplemental tooling
// with no FFI exposure.
func (g *Grammar) EBNF() string {
	if g == nil {
		return ""
	}
	order := make([]string, 0, len(g.Productions))
	alts := make(map[string][]string)
	seen := make(map[string]bool)
	for _, p := range g.Productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			order = append(order, p.LHS)
		}
		var rhsStr string
		for i, sym := range p.RHS {
			if i > 0 {
				rhsStr += " "
			}
			if sym.Terminal {
				rhsStr += "\"" + sym.Text + "\""
			} else {
				rhsStr += sym.Ref
			}
		}
		alts[p.LHS] = append(alts[p.LHS], rhsStr)
	}

	out := ""
	for _, lhs := range order {
		out += lhs + " ::= "
		for i, alt := range alts[lhs] {
			if i > 0 {
				out += " | "
			}
			out += alt
		}
		out += "\n"
	}
	return out
}
