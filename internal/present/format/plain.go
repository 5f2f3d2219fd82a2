package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mithrel/domid/internal/lint"
)

type palette struct {
	deny, warn, rule, gutter, caret, help lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		deny:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		rule:   r.NewStyle().Bold(true),
		gutter: r.NewStyle().Foreground(lipgloss.Color("12")),
		caret:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		help:   r.NewStyle().Faint(true),
	}
}

// WritePlainFindings writes findings as source excerpts with carets under
// the offending value, followed by a one-line summary.
func WritePlainFindings(w io.Writer, findings []lint.Finding, color bool) error {
	p := newPalette(w, color)
	var b strings.Builder
	for _, f := range findings {
		writePlainFinding(&b, p, f)
	}
	b.WriteString(summary(findings))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writePlainFinding(b *strings.Builder, p palette, f lint.Finding) {
	level := p.deny
	if f.Severity == lint.SeverityWarn {
		level = p.warn
	}
	b.WriteString(level.Render(string(f.Severity)+"["+f.Rule+"]") + p.rule.Render(": "+f.Message) + "\n")

	lineNo := strconv.Itoa(f.Line)
	pad := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(b, "%s%s %s:%d:%d\n", pad, p.gutter.Render("-->"), f.File, f.Line, f.Col)
	if f.Source != "" {
		b.WriteString(pad + " " + p.gutter.Render("|") + "\n")
		b.WriteString(p.gutter.Render(lineNo+" |") + " " + f.Source + "\n")
		b.WriteString(pad + " " + p.gutter.Render("|") + " " + indentFor(f.Source, f.Col) + p.caret.Render(carets(f)) + "\n")
	}
	if f.Suggestion != "" {
		b.WriteString(pad + " " + p.gutter.Render("=") + " " + p.help.Render("note: "+f.Suggestion) + "\n")
	}
	if f.Help != "" {
		b.WriteString(pad + " " + p.gutter.Render("=") + " " + p.help.Render("help: "+f.Help) + "\n")
	}
	b.WriteByte('\n')
}

// indentFor reproduces the whitespace before column col so carets line up
// under tab-indented source.
func indentFor(src string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(src); i++ {
		if src[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func carets(f lint.Finding) string {
	n := 1
	if f.EndLine == f.Line && f.EndCol > f.Col {
		n = f.EndCol - f.Col
	}
	return strings.Repeat("^", n)
}

func summary(findings []lint.Finding) string {
	if len(findings) == 0 {
		return "no findings"
	}
	c := lint.Count(findings)
	noun := "findings"
	if len(findings) == 1 {
		noun = "finding"
	}
	return fmt.Sprintf("%d %s (%d deny, %d warn)", len(findings), noun, c[lint.SeverityDeny], c[lint.SeverityWarn])
}
