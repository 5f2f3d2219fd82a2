package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/domid/internal/lint"
)

type jsonReport struct {
	Findings []lint.Finding        `json:"findings"`
	Summary  map[lint.Severity]int `json:"summary"`
}

// WriteJSONFindings writes one JSON document holding every finding and a
// per-severity count.
func WriteJSONFindings(w io.Writer, findings []lint.Finding, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if findings == nil {
		findings = []lint.Finding{}
	}
	return enc.Encode(jsonReport{Findings: findings, Summary: lint.Count(findings)})
}
