package app

import (
	"github.com/mithrel/domid/pkg/domid"
	"github.com/mithrel/domid/pkg/view"
)

var greeting = domid.MustSite("lint.testdata.greeting", domid.WithName("greeting"))

const fixed = "my-identifier"

func Render() view.Node {
	return view.El("div",
		view.El("p", view.ID("hello"), "Hello"),
		view.El("p", view.ID(fixed), "Again"),
		view.El("p", view.ID(greeting.New()), "Fine"),
	)
}
