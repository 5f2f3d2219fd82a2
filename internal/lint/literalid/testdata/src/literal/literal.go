package literal

import (
	"example.com/app/ids"
	"github.com/mithrel/domid/pkg/domid"
	"github.com/mithrel/domid/pkg/view"
)

var site = domid.MustSite("literal.site")

const local = "my-identifier"

func render() {
	_ = view.El("div", view.ID("my-id"), "Hello") // want `literal string passed as id attribute value`
	_ = view.ID(("wrapped"))                       // want `literal string passed as id attribute value`
	_ = view.ID(`raw`)                             // want `literal string passed as id attribute value`
	_ = view.ID('x')                               // want `literal string passed as id attribute value`
	_ = view.Attr("id", "attr-id")                 // want `literal string passed as id attribute value`
	_ = view.Attr("ID", "upper-key")               // want `literal string passed as id attribute value`
	_ = view.Attr("class", "box")
	_ = view.Attr("id", local)
	_ = view.ID(site.New())
	_ = view.ID(ids.SearchBox)
	_ = view.ID(42)
}
