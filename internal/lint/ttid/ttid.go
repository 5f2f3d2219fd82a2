// Package ttid defines an analyzer that reports id attribute values which
// are neither literals nor provably drawn from the allocator.
package ttid

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"github.com/mithrel/domid/internal/lint/idsink"
)

// Name is the rule name.
const Name = "ttid"

// Message is the text of every finding.
const Message = "value that is not an allocated id passed as id attribute value"

const Doc = `check for values passed as id attribute values that are not allocated ids

### What it does

Reports any argument of an id sink (view.ID(x), view.Attr("id", x) and sinks
added with -sinks) that is not a domid.ID, a String or AttributeValue call
on one, or a constant of a generated id catalog. Literals are left to
literalid.

### Why is this bad?

Only ids drawn from a domid.Site, or listed in a catalog checked by domid gen,
are known to be unique. Constants, variables holding strings, formatted
strings and values returned by arbitrary functions can all repeat across
components and produce duplicate ids in the DOM.

### Known problems

The check is syntactic. A domid.ID variable declared but never assigned is
accepted even though it renders the empty string.

### Example

` + "```go" + `
const foo = "my-identifier"

view.El("div", view.ID(foo), "Hello, world!")
` + "```" + `

Use instead:

` + "```go" + `
var greeting = domid.MustSite("app.greeting")

view.El("div", view.ID(greeting.New()), "Hello, world!")
` + "```" + `
`

var Analyzer = &analysis.Analyzer{
	Name:     Name,
	Doc:      Doc,
	URL:      idsink.HelpURL(Name),
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var sinks idsink.SinkList

func init() {
	Analyzer.Flags.Var(&sinks, "sinks", "extra id sinks, comma separated: import/path.Func[:argIndex]")
}

func run(pass *analysis.Pass) (any, error) {
	idsink.Find(pass, sinks.All(), func(a idsink.Arg) {
		if _, ok := idsink.Literal(a.Expr); ok {
			return
		}
		if idsink.Allocated(pass.TypesInfo, a.Expr) {
			return
		}
		pass.Report(analysis.Diagnostic{
			Pos:      a.Expr.Pos(),
			End:      a.Expr.End(),
			Category: Name,
			Message:  Message,
			URL:      idsink.HelpURL(Name),
		})
	})
	return nil, nil
}
