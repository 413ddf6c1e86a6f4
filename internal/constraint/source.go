package constraint

// Source is the tagged-union provenance of a Constraint. It is
// modeled as a sealed interface the way github.com/google/mangle's ast
// package models its own term sum type (ast.BaseTerm, ast.Term): an
// unexported marker method rules out accidental external implementations,
// and callers discriminate with a type switch instead of a dynamic-dispatch
// method table.
type Source interface {
	isSource()
}

// AstPattern marks a constraint recognized directly from AST shape.
type AstPattern struct{}

func (AstPattern) isSource() {}

// TypeSystem marks a constraint derived from static type information.
type TypeSystem struct{}

func (TypeSystem) isSource() {}

// ControlFlow marks a constraint derived from control-flow analysis.
type ControlFlow struct{}

func (ControlFlow) isSource() {}

// DataFlow marks a constraint derived from data-flow analysis.
type DataFlow struct{}

func (DataFlow) isSource() {}

// TestMining marks a constraint mined from a test assertion.
type TestMining struct {
	File string
	Line int
}

func (TestMining) isSource() {}

// Documentation marks a constraint extracted from a comment/docstring cue.
type Documentation struct{}

func (Documentation) isSource() {}

// Telemetry marks a constraint derived from an observed runtime metric.
type Telemetry struct {
	Metric    string
	Threshold float64
}

func (Telemetry) isSource() {}

// UserDefined marks a constraint supplied directly by a caller, e.g. via the
// compile_constraints JSON entry point.
type UserDefined struct{}

func (UserDefined) isSource() {}

// LLMAnalysis marks a constraint produced by the optional semantic oracle.
type LLMAnalysis struct {
	Provider   string
	Prompt     string
	Confidence float64
}

func (LLMAnalysis) isSource() {}

// SourceTag returns the machine-friendly variant name used in diagnostics
// and the FFI-adjacent JSON encodings.
func SourceTag(s Source) string {
	switch s.(type) {
	case AstPattern:
		return "ast_pattern"
	case TypeSystem:
		return "type_system"
	case ControlFlow:
		return "control_flow"
	case DataFlow:
		return "data_flow"
	case TestMining:
		return "test_mining"
	case Documentation:
		return "documentation"
	case Telemetry:
		return "telemetry"
	case UserDefined:
		return "user_defined"
	case LLMAnalysis:
		return "llm_analysis"
	default:
		return "unknown"
	}
}
