// Package idsink holds what the domid lint rules share: where an allocated id
// is required (sinks) and which expression shapes are known to come from the
// allocator (provenance).
//
// Provenance is purely syntactic plus static types. Nothing is evaluated and
// no data flow is followed, so a rule runs in one pass over the syntax tree.
package idsink

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const (
	// ViewPath is the import path of the host framework package.
	ViewPath = "github.com/mithrel/domid/pkg/view"
	// DomIDPath is the import path of the allocator package.
	DomIDPath = "github.com/mithrel/domid/pkg/domid"
	// CatalogMarker is the method generated catalogs carry.
	CatalogMarker = "DomIDCatalog"

	helpBase = "https://github.com/mithrel/domid/tree/main/internal/lint/"
)

// HelpURL returns the documentation link for a rule.
func HelpURL(rule string) string {
	return helpBase + rule + "#readme"
}

// Help returns the help line attached to every finding of rule.
func Help(rule string) string {
	return "for further information visit " + HelpURL(rule)
}

// Arg is an expression in a position where only an allocated id may appear.
type Arg struct {
	Call *ast.CallExpr
	Expr ast.Expr
	Sink Sink
}

// Find calls fn for every sink argument in the files of pass. The pass must
// require inspect.Analyzer.
func Find(pass *analysis.Pass, sinks []Sink, fn func(Arg)) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		callee := typeutil.StaticCallee(pass.TypesInfo, call)
		if callee == nil || callee.Pkg() == nil {
			return
		}
		if sig, ok := callee.Type().(*types.Signature); ok && sig.Recv() != nil {
			return
		}
		for _, s := range sinks {
			if callee.Pkg().Path() != s.Pkg || callee.Name() != s.Func {
				continue
			}
			if s.Arg >= len(call.Args) {
				continue
			}
			if s.KeyArg >= 0 && (s.KeyArg >= len(call.Args) || !isIDKey(pass.TypesInfo, call.Args[s.KeyArg])) {
				continue
			}
			fn(Arg{Call: call, Expr: call.Args[s.Arg], Sink: s})
		}
	})
}

func isIDKey(info *types.Info, expr ast.Expr) bool {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return false
	}
	return strings.EqualFold(constant.StringVal(tv.Value), "id")
}

// Literal reports whether expr is a string or character literal, possibly
// wrapped in parentheses.
func Literal(expr ast.Expr) (*ast.BasicLit, bool) {
	lit, ok := ast.Unparen(expr).(*ast.BasicLit)
	if !ok || (lit.Kind != token.STRING && lit.Kind != token.CHAR) {
		return nil, false
	}
	return lit, true
}

// Allocated reports whether expr has one of the shapes known to originate
// from the allocator:
//
//   - any expression of type domid.ID (or *domid.ID) other than a composite literal
//   - a value of a generated catalog type (one with a DomIDCatalog method)
//     other than a literal or a conversion from a non-catalog value
//   - String() or AttributeValue() called on either of the above
func Allocated(info *types.Info, expr ast.Expr) bool {
	expr = ast.Unparen(expr)
	switch e := expr.(type) {
	case *ast.CompositeLit, *ast.BasicLit:
		return false
	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return Allocated(info, e.X)
		}
	case *ast.StarExpr:
		return Allocated(info, e.X)
	case *ast.CallExpr:
		if tv, ok := info.Types[e.Fun]; ok && tv.IsType() {
			// Conversions keep provenance only when the operand already had it.
			return len(e.Args) == 1 && Allocated(info, e.Args[0])
		}
		if sel, ok := e.Fun.(*ast.SelectorExpr); ok && len(e.Args) == 0 && isAdapter(sel.Sel.Name) {
			if recv := info.TypeOf(sel.X); isIDType(recv) || isCatalogType(recv) {
				return Allocated(info, sel.X)
			}
		}
	}
	t := info.TypeOf(expr)
	return isIDType(t) || isCatalogType(t)
}

func isAdapter(name string) bool {
	return name == "String" || name == "AttributeValue"
}

func isIDType(t types.Type) bool {
	named := namedOf(t)
	if named == nil {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == DomIDPath && obj.Name() == "ID"
}

func isCatalogType(t types.Type) bool {
	named := namedOf(t)
	if named == nil {
		return false
	}
	obj, _, _ := types.LookupFieldOrMethod(named, true, nil, CatalogMarker)
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	return sig.Params().Len() == 0 && sig.Results().Len() == 0
}

func namedOf(t types.Type) *types.Named {
	if t == nil {
		return nil
	}
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	named, _ := t.(*types.Named)
	return named
}
