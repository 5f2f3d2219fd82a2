// Package literalid defines an analyzer that reports string literals used as
// id attribute values.
package literalid

import (
	"go/ast"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"github.com/mithrel/domid/internal/catalog"
	"github.com/mithrel/domid/internal/lint/idsink"
	"github.com/mithrel/domid/internal/util"
)

// Name is the rule name.
const Name = "literalid"

// Message is the text of every finding.
const Message = "literal string passed as id attribute value"

const Doc = `check for literals passed as id attribute values

### What it does

Reports string and character literals passed where an element id is
expected: view.ID(x), view.Attr("id", x) and any sink added with -sinks.

### Why is this bad?

A literal id is the same on every render. Two components (or two copies of
one component) that pick the same literal produce duplicate ids in the DOM,
which breaks label association, fragment links and scripts looking elements
up by id. Ids drawn from a domid.Site are unique per process.

### Known problems

Only direct arguments of a sink are checked. A literal stored in a variable
first is reported by ttid instead.

### Example

` + "```go" + `
view.El("div", view.ID("my-identifier"), "Hello, world!")
` + "```" + `

Use instead:

` + "```go" + `
var greeting = domid.MustSite("app.greeting", domid.WithName("my-identifier"))

view.El("div", view.ID(greeting.New()), "Hello, world!")
` + "```" + `

or a constant of a generated catalog (domid gen):

` + "```go" + `
view.El("div", view.ID(ids.MyIdentifier), "Hello, world!")
` + "```" + `
`

var Analyzer = &analysis.Analyzer{
	Name:     Name,
	Doc:      Doc,
	URL:      idsink.HelpURL(Name),
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	sinks       idsink.SinkList
	catalogPath string
)

func init() {
	Analyzer.Flags.Var(&sinks, "sinks", "extra id sinks, comma separated: import/path.Func[:argIndex]")
	Analyzer.Flags.StringVar(&catalogPath, "catalog", "", "id catalog file used to suggest replacements")
}

func run(pass *analysis.Pass) (any, error) {
	var cat *catalog.Catalog
	if catalogPath != "" {
		c, err := catalog.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		cat = c
	}

	idsink.Find(pass, sinks.All(), func(a idsink.Arg) {
		lit, ok := idsink.Literal(a.Expr)
		if !ok {
			return
		}
		d := analysis.Diagnostic{
			Pos:      lit.Pos(),
			End:      lit.End(),
			Category: Name,
			Message:  Message,
			URL:      idsink.HelpURL(Name),
		}
		if cat != nil {
			if fix, ok := suggest(pass, cat, lit); ok {
				d.SuggestedFixes = []analysis.SuggestedFix{fix}
			}
		}
		pass.Report(d)
	})
	return nil, nil
}

// suggest proposes the closest catalog constant. The text edit is attached
// only when the file already imports the catalog package.
func suggest(pass *analysis.Pass, cat *catalog.Catalog, lit *ast.BasicLit) (analysis.SuggestedFix, bool) {
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return analysis.SuggestedFix{}, false
	}
	best := util.Suggest(value, cat.IDs, 1)
	if len(best) == 0 {
		return analysis.SuggestedFix{}, false
	}
	entry, _ := cat.Lookup(best[0])

	qual := cat.Package
	imported := false
	if file := enclosingFile(pass, lit.Pos()); file != nil && cat.Import != "" {
		qual, imported = importName(file, cat.Import, cat.Package)
	}
	repl := qual + "." + entry.Ident
	fix := analysis.SuggestedFix{Message: "use " + repl}
	if imported {
		fix.TextEdits = []analysis.TextEdit{{Pos: lit.Pos(), End: lit.End(), NewText: []byte(repl)}}
	}
	return fix, true
}

func enclosingFile(pass *analysis.Pass, pos token.Pos) *ast.File {
	for _, f := range pass.Files {
		if f.FileStart <= pos && pos < f.FileEnd {
			return f
		}
	}
	return nil
}

func importName(f *ast.File, path, fallback string) (string, bool) {
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil || p != path {
			continue
		}
		if spec.Name != nil && spec.Name.Name != "_" && spec.Name.Name != "." {
			return spec.Name.Name, true
		}
		return fallback, true
	}
	return fallback, false
}
