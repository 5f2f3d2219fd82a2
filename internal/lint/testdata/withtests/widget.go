package withtests

import "github.com/mithrel/domid/pkg/view"

func Widget() view.Node { return view.El("div", view.ID("dup")) }
