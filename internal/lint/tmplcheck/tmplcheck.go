// Package tmplcheck applies the literalid and ttid rules to id attributes in
// HTML templates.
//
// An id attribute value with no template action is a literal. A value with
// actions must consist of exactly one action calling domid or domidKebab
// (see domid.FuncMap); anything else cannot be proven unique.
package tmplcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/mithrel/domid/internal/lint/literalid"
	"github.com/mithrel/domid/internal/lint/ttid"
)

// Extensions are the file suffixes picked up when a directory is scanned.
var Extensions = []string{".html", ".tmpl", ".gohtml"}

// Finding is one offending id attribute value.
type Finding struct {
	Rule    string
	File    string
	Line    int
	Col     int
	Offset  int
	End     int
	Message string
	Value   string
	// Reason explains why an action was not accepted. Empty for literals.
	Reason string
}

type span struct{ start, end int }

// Check scans one template source.
func Check(name string, src []byte) ([]Finding, error) {
	actions := findActions(src)
	masked := mask(src, actions)

	var out []Finding
	z := html.NewTokenizer(bytes.NewReader(masked))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return out, fmt.Errorf("%s: %w", name, err)
			}
			return out, nil
		}
		raw := z.Raw()
		start := offset
		offset += len(raw)
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		for _, v := range idValues(raw) {
			vs, ve := start+v.start, start+v.end
			if f, bad := judge(src, actions, vs, ve); bad {
				f.File = name
				f.Line, f.Col = lineCol(src, vs)
				out = append(out, f)
			}
		}
	}
}

// CheckPaths scans files, directories (recursively, by Extensions) and glob
// patterns.
func CheckPaths(patterns []string) ([]Finding, error) {
	var files []string
	for _, p := range patterns {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && slices.Contains(Extensions, filepath.Ext(path)) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("template pattern %q: %w", p, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	files = slices.Compact(files)

	var out []Finding
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return out, err
		}
		found, err := Check(f, src)
		out = append(out, found...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func judge(src []byte, actions []span, vs, ve int) (Finding, bool) {
	value := string(src[vs:ve])
	f := Finding{Offset: vs, End: ve, Value: value}

	var inside []span
	for _, a := range actions {
		if a.start >= vs && a.end <= ve {
			inside = append(inside, a)
		}
	}
	if len(inside) == 0 {
		f.Rule, f.Message = literalid.Name, literalid.Message
		return f, true
	}

	f.Rule, f.Message = ttid.Name, ttid.Message
	if ve-vs >= 2 && (src[vs] == '"' || src[vs] == '\'') {
		vs, ve = vs+1, ve-1
	}
	trimmed := strings.TrimSpace(string(src[vs:ve]))
	if len(inside) != 1 || len(trimmed) != inside[0].end-inside[0].start {
		f.Reason = "value must be a single action"
		return f, true
	}
	a := inside[0]
	if _, err := parseAction(string(src[a.start+2 : a.end-2])); err != nil {
		f.Reason = err.Error()
		return f, true
	}
	return Finding{}, false
}

// findActions returns the spans of every {{ ... }} action, delimiters
// included. Quoted strings inside an action may contain "}}".
func findActions(src []byte) []span {
	var out []span
	for i := 0; i+1 < len(src); {
		if src[i] != '{' || src[i+1] != '{' {
			i++
			continue
		}
		end := actionEnd(src, i+2)
		if end < 0 {
			break
		}
		out = append(out, span{i, end})
		i = end
	}
	return out
}

func actionEnd(src []byte, i int) int {
	var quote byte
	for ; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' && quote != '`' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '`' || c == '\'':
			quote = c
		case c == '}' && i+1 < len(src) && src[i+1] == '}':
			return i + 2
		}
	}
	return -1
}

// mask blanks the inside of every action so quotes in template code do not
// confuse the HTML tokenizer. Offsets and newlines are preserved.
func mask(src []byte, actions []span) []byte {
	out := bytes.Clone(src)
	for _, a := range actions {
		for i := a.start + 2; i < a.end-2; i++ {
			if out[i] != '\n' {
				out[i] = '_'
			}
		}
	}
	return out
}

// idValues returns the value spans, relative to raw, of every id attribute
// in a start tag. Quoted values include their quotes. raw must be masked;
// an action between attributes ({{ if }}id="x"{{ end }}) separates them.
func idValues(raw []byte) []span {
	var out []span
	i := 1
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}
	for i < len(raw) {
		for i < len(raw) {
			if isSpace(raw[i]) || raw[i] == '/' {
				i++
			} else if end := maskedActionEnd(raw, i); end > i {
				i = end
			} else {
				break
			}
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}
		nameStart := i
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			if i > nameStart && maskedActionEnd(raw, i) > i {
				break
			}
			i++
		}
		name := raw[nameStart:i]
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] != '=' {
			continue
		}
		i++
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		valStart := i
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			q := raw[i]
			i++
			for i < len(raw) && raw[i] != q {
				i++
			}
			if i < len(raw) {
				i++
			}
		} else {
			for i < len(raw) && !isSpace(raw[i]) && raw[i] != '>' {
				i++
			}
		}
		if strings.EqualFold(string(name), "id") {
			out = append(out, span{valStart, i})
		}
	}
	return out
}

// maskedActionEnd returns the end of the masked action starting at raw[i], or
// i when there is none.
func maskedActionEnd(raw []byte, i int) int {
	if !bytes.HasPrefix(raw[i:], []byte("{{")) {
		return i
	}
	if j := bytes.Index(raw[i+2:], []byte("}}")); j >= 0 {
		return i + 2 + j + 2
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func lineCol(src []byte, off int) (int, int) {
	line := 1 + bytes.Count(src[:off], []byte("\n"))
	col := off + 1
	if nl := bytes.LastIndexByte(src[:off], '\n'); nl >= 0 {
		col = off - nl
	}
	return line, col
}
