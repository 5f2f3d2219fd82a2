package tmplcheck

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	ok := map[string]call{
		` domid `:                   {Func: "domid"},
		` domid "search" `:          {Func: "domid", Arg: `"search"`},
		`- domidKebab .Title -`:     {Func: "domidKebab", Arg: ".Title"},
		`domid $item.Name`:          {Func: "domid", Arg: "$item.Name"},
		` "body" | domid `:          {Func: "domid", Arg: `"body"`},
		".Label|domidKebab":         {Func: "domidKebab", Arg: ".Label"},
		"domid `raw \\ name`":       {Func: "domid", Arg: "`raw \\ name`"},
		` domid "with \"quotes\"" `: {Func: "domid", Arg: `"with \"quotes\""`},
	}
	for in, want := range ok {
		got, err := parseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{
		` .Heading `,
		` printf "%s" .X `,
		` domid "a" "b" `,
		` "body" | printf `,
		` "body" `,
		``,
		` domid | printf `,
	} {
		_, err := parseAction(bad)
		assert.Error(t, err, bad)
	}
}

func TestCheck(t *testing.T) {
	src := []byte(`<div>
  <button id="save" class="btn">Save</button>
  <input id={{ domid "q" }}>
  <span id="{{ .ID }}"></span>
  <a href="#x" data-note='id="nope"'></a>
</div>`)
	found, err := Check("inline.html", src)
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "literalid", found[0].Rule)
	assert.Equal(t, "literal string passed as id attribute value", found[0].Message)
	assert.Equal(t, `"save"`, found[0].Value)
	assert.Equal(t, 2, found[0].Line)
	assert.Equal(t, 14, found[0].Col)
	assert.Equal(t, `"save"`, string(src[found[0].Offset:found[0].End]))

	assert.Equal(t, "ttid", found[1].Rule)
	assert.Equal(t, `"{{ .ID }}"`, found[1].Value)
	assert.Equal(t, 4, found[1].Line)
	assert.NotEmpty(t, found[1].Reason)
}

func TestCheckConditionalAttribute(t *testing.T) {
	for _, tc := range []struct {
		src  string
		rule string
	}{
		{`<div {{ if .X }}id="fixed"{{ end }}>`, "literalid"},
		{`<div class="a" {{ if .X }}id="fixed"{{ end }}>`, "literalid"},
		{`<div class="a"{{ if .X }} id="fixed"{{ end }}>`, "literalid"},
		{`<div {{ with .Y }}id="{{ . }}"{{ end }}>`, "ttid"},
	} {
		found, err := Check("cond.html", []byte(tc.src))
		require.NoError(t, err, tc.src)
		require.Len(t, found, 1, tc.src)
		assert.Equal(t, tc.rule, found[0].Rule, tc.src)
		assert.Equal(t, tc.src[found[0].Offset:found[0].End], found[0].Value, tc.src)
	}

	found, err := Check("cond.html", []byte(`<div {{ if .X }}id="{{ domid "a" }}"{{ end }} {{ .Attrs }}>`))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCheckPaths(t *testing.T) {
	dir := filepath.Join("testdata", "templates")
	found, err := CheckPaths([]string{dir})
	require.NoError(t, err)

	type hit struct {
		file string
		line int
		rule string
	}
	var got []hit
	for _, f := range found {
		got = append(got, hit{filepath.Base(f.File), f.Line, f.Rule})
	}
	assert.Equal(t, []hit{
		{"card.tmpl", 2, "ttid"},
		{"card.tmpl", 3, "ttid"},
		{"page.html", 6, "literalid"},
	}, got)
}

func TestCheckPathsGlob(t *testing.T) {
	found, err := CheckPaths([]string{filepath.Join("testdata", "templates", "*.html")})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "page.html", filepath.Base(found[0].File))

	_, err = CheckPaths([]string{"[bad"})
	assert.Error(t, err)
}
