package tt

import (
	"fmt"

	"example.com/app/ids"
	"github.com/mithrel/domid/pkg/domid"
	"github.com/mithrel/domid/pkg/view"
)

var site = domid.MustSite("tt.site")

const foo = "my-identifier"

func label() string { return "label" }

func render(name string) {
	_ = view.El("div", view.ID(foo), "Hello") // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(name)                          // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(label())                       // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(fmt.Sprintf("%s-x", name))     // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(domid.ID{})                    // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(domid.ID{}.String())           // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(ids.Ids(7))                    // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID(42)                            // want `value that is not an allocated id passed as id attribute value`
	_ = view.Attr("id", foo+"-suffix")         // want `value that is not an allocated id passed as id attribute value`
	_ = view.ID("literal")
	_ = view.Attr("class", foo)
}
