package catalog

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/pmezard/go-difflib/difflib"
)

var genTemplate = template.Must(template.New("catalog").Parse(`// Code generated by domid gen. DO NOT EDIT.
// fingerprint: {{ .Fingerprint }}

package {{ .Package }}

// {{ .Type }} enumerates the static element ids of the catalog.
type {{ .Type }} int

const (
{{- range $i, $e := .Entries }}
	// {{ $e.Ident }} is the id {{ printf "%q" $e.Value }}.
	{{ $e.Ident }}{{ if eq $i 0 }} {{ $.Type }} = iota{{ end }}
{{- end }}
)

var {{ .Values }} = [...]string{
{{- range .Entries }}
	{{ printf "%q" .Value }},
{{- end }}
}

// String returns the id text.
func (i {{ .Type }}) String() string {
	if i < 0 || int(i) >= len({{ .Values }}) {
		return ""
	}
	return {{ .Values }}[i]
}

// AttributeValue renders the id into an id attribute.
func (i {{ .Type }}) AttributeValue() string { return i.String() }

// DomIDCatalog marks {{ .Type }} as a generated id catalog.
func ({{ .Type }}) DomIDCatalog() {}

// {{ .Type }}All returns every id in declaration order.
func {{ .Type }}All() []{{ .Type }} {
	out := make([]{{ .Type }}, len({{ .Values }}))
	for i := range out {
		out[i] = {{ .Type }}(i)
	}
	return out
}
`))

type genData struct {
	Package     string
	Type        string
	Values      string
	Fingerprint string
	Entries     []Entry
}

// Generate renders the Go source for a valid catalog.
func Generate(c *Catalog) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	data := genData{
		Package:     c.Package,
		Type:        c.Type,
		Values:      strings.ToLower(c.Type[:1]) + c.Type[1:] + "Values",
		Fingerprint: c.Fingerprint(),
		Entries:     c.Entries(),
	}
	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render catalog: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format catalog: %w", err)
	}
	return src, nil
}

// Diff returns a unified diff from the file currently at path to the freshly
// generated source. It is empty when both are identical.
func Diff(path string, current, generated []byte) (string, error) {
	if bytes.Equal(current, generated) {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
