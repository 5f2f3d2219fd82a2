package provenance

import (
	"example.com/app/ids"
	"github.com/mithrel/domid/pkg/domid"
	"github.com/mithrel/domid/pkg/view"
)

var site = domid.MustSite("provenance.site")

type card struct {
	id domid.ID
}

func render(c card, ptr *domid.ID) {
	id := site.New()
	_ = view.ID(site.New())
	_ = view.ID(site.Named("search"))
	_ = view.ID(domid.New("menu"))
	_ = view.ID(id)
	_ = view.ID(&id)
	_ = view.ID(ptr)
	_ = view.ID(*ptr)
	_ = view.ID(c.id)
	_ = view.ID(id.String())
	_ = view.ID((id).AttributeValue())
	_ = view.Attr("id", site.New().String())
	_ = view.ID(ids.LanguageSelector)
	_ = view.ID(ids.SearchBox.String())
	_ = view.ID(ids.Ids(ids.SearchBox))
}
