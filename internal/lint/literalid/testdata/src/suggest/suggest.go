package suggest

import (
	"example.com/app/ids"
	"github.com/mithrel/domid/pkg/view"
)

func render() {
	_ = view.ID("langSelector") // want `literal string passed as id attribute value`
	_ = view.ID(ids.SearchBox)
}
