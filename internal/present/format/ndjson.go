package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/domid/internal/lint"
)

// WriteNDJSONFindings writes findings as newline-delimited JSON objects.
func WriteNDJSONFindings(w io.Writer, findings []lint.Finding) error {
	enc := json.NewEncoder(w)
	for _, f := range findings {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
