// Package testmining implements Clew's TestMining recognizer family:
// mining assertions out of test source to recover the behavioral
// constraints they encode. Grounded on the teacher's
// internal/tools/codedom pattern of regex/line-oriented structural
// scanning over source text rather than a full parse, since assertion
// call shapes vary too much across frameworks to be worth a tree-sitter
// grammar per one.
package testmining

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"ananke/internal/constraint"
)

// family names one of the assertion shapes this recognizer knows about:
// equality, type-check, error-expected, property-check, regex-match,
// membership, truthiness, nullity, comparison. kind/enforcement default
// to semantic, except type-check assertions, which carry type_safety
// kind and structural enforcement since they assert a type shape rather
// than a value.
type family struct {
	name        string
	kind        constraint.Kind
	enforcement constraint.Enforcement
	pattern     *regexp.Regexp
}

var families = []family{
	{"equality", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assert(?:Equal|\.Equal)|Expect\(.*\)\.To\(Equal|\.toBe\(|\.toEqual\()`)},
	{"type_check", constraint.KindTypeSafety, constraint.EnforcementStructural,
		regexp.MustCompile(`\b(assertIsInstance|isinstance|assert\.IsType|instanceof)\b`)},
	{"error_expected", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assertRaises|pytest\.raises|assert\.Error|require\.Error|\.toThrow\()`)},
	{"property_check", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\bquick\.Check\b|\bhypothesis\b|\bproptest\b`)},
	{"regex_match", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assertRegex|assert\.Regexp|re\.match|\.toMatch\()`)},
	{"membership", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assertIn|assert\.Contains|\.toContain\()`)},
	{"truthiness", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assertTrue|assert\.True|assertFalse|assert\.False|\.toBeTruthy\(|\.toBeFalsy\()`)},
	{"nullity", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assertIsNone|assertIsNotNone|assert\.Nil|assert\.NotNil|\.toBeNull\()`)},
	{"comparison", constraint.KindSemantic, constraint.EnforcementSemantic,
		regexp.MustCompile(`\b(assertGreater|assertLess|assert\.Greater|assert\.Less)\b`)},
}

// frameworkVerbs are call-shaped tokens that belong to the assertion
// vocabulary itself and are never the function under test.
var frameworkVerbs = map[string]bool{
	"expect": true, "assert": true, "assertEqual": true, "assertTrue": true,
	"assertFalse": true, "assertIsNone": true, "assertIsNotNone": true,
	"assertIn": true, "assertRaises": true, "assertIsInstance": true,
	"assertRegex": true, "assertGreater": true, "assertLess": true,
	"describe": true, "it": true, "test": true, "require": true,
	"isinstance": true, "pytest": true, "hypothesis": true, "quick": true,
	"proptest": true, "instanceof": true,
}

var identCallRegex = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// funcUnderTest makes a best-effort guess at the function named by an
// assertion's left-hand expression: the first call-shaped identifier on
// the line that isn't itself part of the assertion vocabulary.
func funcUnderTest(line string) string {
	for _, m := range identCallRegex.FindAllStringSubmatch(line, -1) {
		if !frameworkVerbs[m[1]] {
			return m[1]
		}
	}
	return "unknown"
}

var lastParenRegex = regexp.MustCompile(`\(([^()]*)\)\s*;?\s*$`)

// expectedValue best-effort extracts the literal handed to the assertion
// as its expected value, as source text: the trailing parenthesized
// argument list on the line.
func expectedValue(line string) string {
	if m := lastParenRegex.FindStringSubmatch(strings.TrimSpace(line)); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// AssertionRecognizer scans src line by line and proposes one Constraint
// per recognized assertion call. A malformed or unrecognizable assertion
// is simply not matched by any family pattern — silently skipped rather
// than aborting the file.
type AssertionRecognizer struct{}

func (AssertionRecognizer) Name() string { return "testmining.assertions" }

func (AssertionRecognizer) Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error) {
	var out []constraint.Constraint

	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		for _, f := range families {
			if !f.pattern.MatchString(line) {
				continue
			}
			fn := funcUnderTest(line)
			expected := expectedValue(line)
			id := constraint.DeriveID("test_mining", f.name, originFile, lineNo, fn)
			out = append(out, constraint.Constraint{
				ID:          id,
				Name:        fmt.Sprintf("test_mining_%s_%s", fn, f.name),
				Description: fmt.Sprintf("%s assertion on %q expects %q", f.name, fn, expected),
				Kind:        f.kind,
				Source:      constraint.TestMining{File: originFile, Line: lineNo},
				Enforcement: f.enforcement,
				Priority:    constraint.PriorityHigh,
				Severity:    constraint.SeverityWarning,
				Confidence:  0.9,
				Frequency:   1,
				OriginFile:  originFile,
				OriginLine:  lineNo,
			})
			// A line rarely matches more than one assertion family; the
			// first match wins so one line never yields two constraints
			// for what is really one call.
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("testmining: scan: %w", err)
	}
	return out, nil
}

// Recognizer is the structural shape internal/clew's dispatch table
// expects.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error)
}

// Recognizers returns the full test-mining recognizer set.
func Recognizers() []Recognizer {
	return []Recognizer{AssertionRecognizer{}}
}
