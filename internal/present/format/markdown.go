package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// WriteRuleDoc renders a rule's documentation with glamour. The first line of
// doc becomes the title.
func WriteRuleDoc(w io.Writer, name, doc string, color bool) error {
	summary, body, _ := strings.Cut(strings.TrimSpace(doc), "\n")
	md := fmt.Sprintf("# %s\n\n%s.\n\n%s\n", name, summary, strings.TrimSpace(body))

	style := "notty"
	if color {
		style = "dracula"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
