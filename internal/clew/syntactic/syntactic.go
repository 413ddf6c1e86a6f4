// Package syntactic implements Clew's AST-pattern recognizer family:
// constraints recognized directly from AST shape rather than text.
//
// Grounded on the teacher's internal/world/ast_treesitter.go: a
// *sitter.Parser per language, Close()'d on teardown, walking the parsed
// tree with sitter.Node.Child/NamedChild. Generalized here from "extract a
// fact per declaration" to "recognize function-naming-convention
// violations and propose a Constraint per violation class".
package syntactic

import (
	"context"
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"ananke/internal/constraint"
)

var (
	camelCase = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	snakeCase = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// namingConvention maps a language to the function-naming pattern its
// ecosystem favors and the constraint name/description to emit when a
// function violates it.
type namingConvention struct {
	pattern     *regexp.Regexp
	constraintName string
	description string
	funcNodeKind   string
	nameFieldKind  string
}

var conventions = map[string]namingConvention{
	"go":         {camelCase, "use_camelCase", "Functions must use camelCase naming", "function_declaration", "identifier"},
	"javascript": {camelCase, "use_camelCase", "Functions must use camelCase naming", "function_declaration", "identifier"},
	"typescript": {camelCase, "use_camelCase", "Functions must use camelCase naming", "function_declaration", "identifier"},
	"python":     {snakeCase, "use_snake_case", "Functions must use snake_case naming", "function_definition", "identifier"},
	"rust":       {snakeCase, "use_snake_case", "Functions must use snake_case naming", "function_item", "identifier"},
}

func sitterLanguage(lang string) *sitter.Language {
	switch lang {
	case "go":
		return golang.GetLanguage()
	case "python":
		return python.GetLanguage()
	case "rust":
		return rust.GetLanguage()
	case "javascript":
		return javascript.GetLanguage()
	case "typescript":
		return typescript.GetLanguage()
	default:
		return nil
	}
}

// NamingRecognizer flags function declarations whose name violates the
// language's idiomatic casing convention.
type NamingRecognizer struct{}

func (NamingRecognizer) Name() string { return "syntactic.naming" }

func (NamingRecognizer) Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error) {
	conv, ok := conventions[lang]
	if !ok {
		return nil, nil
	}
	sl := sitterLanguage(lang)
	if sl == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(sl)

	tree, err := parser.ParseCtx(ctx, nil, []byte(src))
	if err != nil {
		return nil, fmt.Errorf("syntactic: parse %s: %w", lang, err)
	}
	defer tree.Close()

	var violations int
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != conv.funcNodeKind {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		name := nameNode.Content([]byte(src))
		if !conv.pattern.MatchString(name) {
			violations++
		}
	})

	if violations == 0 {
		return nil, nil
	}

	id := constraint.DeriveID(string(constraint.KindSyntactic), conv.constraintName, originFile, 0, lang)
	return []constraint.Constraint{{
		ID:          id,
		Name:        conv.constraintName,
		Description: conv.description,
		Kind:        constraint.KindSyntactic,
		Source:      constraint.AstPattern{},
		Enforcement: constraint.EnforcementSyntactic,
		Priority:    constraint.PriorityHigh,
		Severity:    constraint.SeverityError,
		Confidence:  1.0,
		Frequency:   violations,
		OriginFile:  originFile,
	}}, nil
}

// walk performs a depth-first traversal over n, calling visit on every
// descendant including n itself.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// Recognizer is the structural shape internal/clew's dispatch table
// expects; declared locally so this package has no dependency on clew.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error)
}

// Recognizers returns the full syntactic recognizer set for the dispatch
// table in internal/clew.
func Recognizers() []Recognizer {
	return []Recognizer{NamingRecognizer{}}
}
