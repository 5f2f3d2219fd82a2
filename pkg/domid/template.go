package domid

import (
	"html/template"
	"maps"
)

// templateFuncs is extended by optional adapters at init time.
var templateFuncs = template.FuncMap{}

func init() {
	site := MustSite("domid.template")
	templateFuncs["domid"] = func(name ...string) string {
		return drawFor(site, name).String()
	}
}

// FuncMap returns the html/template functions that allocate identifiers:
//
//	<input id="{{ domid "search" }}">
//
// "domid" takes an optional name segment; "domidKebab" (unless built with
// domid_nocase) converts it to kebab-case first. Every call is one draw.
func FuncMap() template.FuncMap {
	return maps.Clone(templateFuncs)
}

func drawFor(s *Site, name []string) ID {
	if len(name) == 0 || name[0] == "" {
		return s.New()
	}
	return s.Named(name[0])
}
