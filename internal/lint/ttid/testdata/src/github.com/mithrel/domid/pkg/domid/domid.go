package domid

type ID struct{ text string }

func (id ID) String() string { return id.text }

func (id ID) AttributeValue() string { return id.text }

type Site struct{}

type SiteOption func()

func MustSite(key string, opts ...SiteOption) *Site { return &Site{} }

func (s *Site) New() ID { return ID{} }

func (s *Site) Named(name string) ID { return ID{} }

func New(name string) ID { return ID{} }
