// Package docscan implements Clew's Documentation recognizer family:
// constraints surfaced from comment and docstring cues — "must", "never",
// "always", "should" phrasing — plus optional YAML front-matter metadata
// at the top of a doc comment block.
//
// Grounded on the teacher's internal/logging/audit.go style of tagging
// free-text records with a small fixed vocabulary, generalized from audit
// tags to constraint cue words.
package docscan

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"ananke/internal/constraint"
)

var cueLine = regexp.MustCompile(`(?i)\b(must|must not|never|always|should|shall)\b`)

// frontMatter is the optional YAML block a doc comment may open with,
// e.g. `--- \n priority: critical \n ---`, letting a human author pin
// priority/severity on a documentation-derived constraint explicitly
// rather than relying on the cue-word default.
type frontMatter struct {
	Priority string `yaml:"priority"`
	Severity string `yaml:"severity"`
}

// CueRecognizer scans comment-like lines for normative language and
// proposes one constraint per cue line found.
type CueRecognizer struct{}

func (CueRecognizer) Name() string { return "docscan.cues" }

func (CueRecognizer) Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error) {
	fm, body := extractFrontMatter(src)

	priority := constraint.PriorityMedium
	severity := constraint.SeverityInfo
	if fm != nil {
		if p, ok := constraint.ParsePriority(fm.Priority); ok {
			priority = p
		}
		if fm.Severity != "" {
			severity = constraint.Severity(fm.Severity)
		}
	}

	var out []constraint.Constraint
	scanner := bufio.NewScanner(strings.NewReader(body))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !isCommentLine(line, lang) {
			continue
		}
		loc := cueLine.FindStringIndex(line)
		if loc == nil {
			continue
		}
		text := strings.TrimSpace(stripCommentMarker(line, lang))
		id := constraint.DeriveID("documentation", text, originFile, lineNo, lang)
		out = append(out, constraint.Constraint{
			ID:          id,
			Name:        fmt.Sprintf("doc_cue_%d", lineNo),
			Description: text,
			Kind:        constraint.KindSemantic,
			Source:      constraint.Documentation{},
			Enforcement: constraint.EnforcementSemantic,
			Priority:    priority,
			Severity:    severity,
			Confidence:  0.55,
			OriginFile:  originFile,
			OriginLine:  lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("docscan: scan: %w", err)
	}
	return out, nil
}

func extractFrontMatter(src string) (*frontMatter, string) {
	if !strings.HasPrefix(strings.TrimLeft(src, "\n"), "---") {
		return nil, src
	}
	trimmed := strings.TrimLeft(src, "\n")
	rest := trimmed[3:]
	end := strings.Index(rest, "---")
	if end < 0 {
		return nil, src
	}
	block := rest[:end]
	var fm frontMatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, src
	}
	return &fm, rest[end+3:]
}

var commentMarkers = map[string]string{
	"go":         "//",
	"javascript": "//",
	"typescript": "//",
	"rust":       "//",
	"python":     "#",
}

func isCommentLine(line, lang string) bool {
	marker, ok := commentMarkers[lang]
	if !ok {
		marker = "//"
	}
	return strings.HasPrefix(strings.TrimSpace(line), marker) || strings.HasPrefix(strings.TrimSpace(line), "*")
}

func stripCommentMarker(line, lang string) string {
	marker, ok := commentMarkers[lang]
	if !ok {
		marker = "//"
	}
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, marker)
	trimmed = strings.TrimPrefix(trimmed, "*")
	return trimmed
}

// Recognizer is the structural shape internal/clew's dispatch table
// expects.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, src, lang, originFile string) ([]constraint.Constraint, error)
}

// Recognizers returns the full documentation recognizer set.
func Recognizers() []Recognizer {
	return []Recognizer{CueRecognizer{}}
}
