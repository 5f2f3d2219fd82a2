package ids

type Ids int

const (
	LanguageSelector Ids = iota
	SearchBox
)

func (i Ids) String() string { return "" }

func (i Ids) AttributeValue() string { return i.String() }

func (Ids) DomIDCatalog() {}
