// Package lint runs the domid rules over Go packages and HTML templates and
// turns their diagnostics into findings.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/mithrel/domid/internal/lint/idsink"
	"github.com/mithrel/domid/internal/lint/literalid"
	"github.com/mithrel/domid/internal/lint/ttid"
)

// Severity decides what a finding does to the exit status.
type Severity string

const (
	SeverityDeny  Severity = "deny"
	SeverityWarn  Severity = "warn"
	SeverityAllow Severity = "allow"
)

// ParseSeverity validates a severity name.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityDeny:
		return SeverityDeny, nil
	case SeverityWarn:
		return SeverityWarn, nil
	case SeverityAllow:
		return SeverityAllow, nil
	}
	return "", fmt.Errorf("unknown severity %q (want deny, warn or allow)", s)
}

// Finding is one rule violation, from Go source or from a template.
type Finding struct {
	Rule       string   `json:"rule"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Help       string   `json:"help"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Col        int      `json:"col"`
	EndLine    int      `json:"end_line"`
	EndCol     int      `json:"end_col"`
	Suggestion string   `json:"suggestion,omitempty"`
	// Source is the text of Line, used for the caret excerpt.
	Source string `json:"-"`
}

// Analyzers returns every domid rule.
func Analyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{literalid.Analyzer, ttid.Analyzer}
}

// Rule returns the analyzer named name.
func Rule(name string) (*analysis.Analyzer, bool) {
	for _, a := range Analyzers() {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// RuleNames lists the rule names.
func RuleNames() []string {
	var out []string
	for _, a := range Analyzers() {
		out = append(out, a.Name)
	}
	return out
}

func helpFor(rule string) string {
	return idsink.Help(rule)
}

// HasDeny reports whether any finding fails the run.
func HasDeny(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityDeny {
			return true
		}
	}
	return false
}

// Count returns the number of findings per severity.
func Count(findings []Finding) map[Severity]int {
	out := make(map[Severity]int)
	for _, f := range findings {
		out[f.Severity]++
	}
	return out
}

func sortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Rule < b.Rule
	})
}
