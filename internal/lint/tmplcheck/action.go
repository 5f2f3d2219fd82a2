package tmplcheck

import (
	"fmt"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	wsCode = iota + 1
	identCode
	fieldCode
	stringCode
	pipeCode
)

var (
	wsToken     = parsly.NewToken(wsCode, "Whitespace", matcher.NewWhiteSpace())
	identToken  = parsly.NewToken(identCode, "Identifier", &identMatcher{})
	fieldToken  = parsly.NewToken(fieldCode, "Field", &fieldMatcher{})
	stringToken = parsly.NewToken(stringCode, "String", &stringMatcher{})
	pipeToken   = parsly.NewToken(pipeCode, "|", matcher.NewByte('|'))
)

// allocFuncs are the template functions registered by domid.FuncMap.
var allocFuncs = map[string]bool{
	"domid":      true,
	"domidKebab": true,
}

// call is a recognised allocator action.
type call struct {
	Func string
	Arg  string
}

// parseAction accepts the pipelines
//
//	domid
//	domid "name"
//	domid .Field
//	"name" | domid
//	.Field | domidKebab
//
// where the argument may also be a $variable. inner is the text between the
// action delimiters.
func parseAction(inner string) (call, error) {
	inner = strings.TrimSpace(inner)
	inner = strings.TrimSpace(strings.TrimPrefix(inner, "- "))
	inner = strings.TrimSpace(strings.TrimSuffix(inner, " -"))

	cursor := parsly.NewCursor("action", []byte(inner), 0)
	var c call

	matched := cursor.MatchAfterOptional(wsToken, identToken, fieldToken, stringToken)
	switch matched.Code {
	case identToken.Code:
		c.Func = matched.Text(cursor)
		if !allocFuncs[c.Func] {
			return c, fmt.Errorf("action calls %s", c.Func)
		}
		matched = cursor.MatchAfterOptional(wsToken, stringToken, fieldToken)
		switch matched.Code {
		case stringToken.Code, fieldToken.Code:
			c.Arg = matched.Text(cursor)
		default:
			if cursor.HasMore() {
				return c, cursor.NewError(stringToken)
			}
			return c, nil
		}
	case fieldToken.Code, stringToken.Code:
		c.Arg = matched.Text(cursor)
		if matched = cursor.MatchAfterOptional(wsToken, pipeToken); matched.Code != pipeToken.Code {
			return c, cursor.NewError(pipeToken)
		}
		if matched = cursor.MatchAfterOptional(wsToken, identToken); matched.Code != identToken.Code {
			return c, cursor.NewError(identToken)
		}
		c.Func = matched.Text(cursor)
		if !allocFuncs[c.Func] {
			return c, fmt.Errorf("action pipes into %s", c.Func)
		}
	default:
		return c, cursor.NewError(identToken)
	}

	cursor.MatchOne(wsToken)
	if cursor.HasMore() {
		return c, fmt.Errorf("unexpected %q after %s", inner[cursor.Pos:], c.Func)
	}
	return c, nil
}

type identMatcher struct{}

func (m *identMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || !(isLetter(input[pos]) || input[pos] == '_') {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size && isIdentByte(input[i]); i++ {
		matched++
	}
	return matched
}

// fieldMatcher matches .Field, .A.B, $var and $var.Field.
type fieldMatcher struct{}

func (m *fieldMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || (input[pos] != '.' && input[pos] != '$') {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size && (isIdentByte(input[i]) || input[i] == '.'); i++ {
		matched++
	}
	return matched
}

// stringMatcher matches an interpreted or raw Go string literal.
type stringMatcher struct{}

func (m *stringMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size {
		return 0
	}
	quote := input[pos]
	if quote != '"' && quote != '`' {
		return 0
	}
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			return i - pos + 1
		}
	}
	return 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
