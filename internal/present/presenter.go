package present

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/mithrel/domid/internal/lint"
	"github.com/mithrel/domid/internal/present/format"
)

type Mode int

const (
	ModePlain Mode = iota
	ModeJSON
	ModeNDJSON
)

type Options struct {
	Mode       Mode
	Color      bool
	JSONIndent bool
}

// ParseMode parses "plain", "json" or "ndjson".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "plain":
		return ModePlain, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	default:
		return ModePlain, false
	}
}

// ColorEnabled resolves the color setting (auto, always, never) for w.
// auto colours only terminals and honours NO_COLOR.
func ColorEnabled(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RenderFindings renders lint findings according to options.
func RenderFindings(w io.Writer, findings []lint.Finding, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONFindings(w, findings, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONFindings(w, findings)
	default:
		return format.WritePlainFindings(w, findings, opts.Color)
	}
}

// RenderRuleDoc renders the markdown documentation of a rule.
func RenderRuleDoc(w io.Writer, name, doc string, opts Options) error {
	return format.WriteRuleDoc(w, name, doc, opts.Color)
}
