package domid

import (
	"fmt"
	"strings"
)

const (
	// Separator joins the name prefix and the uniqueness token.
	Separator = "--"
	// DefaultPrefix is used when an identifier has no name segment.
	DefaultPrefix = "domid"
)

// ID is one allocated instance identifier. Values are immutable; the zero ID
// was never allocated and renders as "".
type ID struct {
	site   string
	prefix string
	token  string
	text   string
}

// String returns the identifier payload.
func (id ID) String() string { return id.text }

// Prefix returns the human-readable part, after any case conversion.
func (id ID) Prefix() string { return id.prefix }

// Token returns the uniqueness component.
func (id ID) Token() string { return id.token }

// Site returns the key of the allocation site that produced id.
func (id ID) Site() string { return id.site }

// IsZero reports whether id was never allocated.
func (id ID) IsZero() bool { return id.token == "" }

// Selector returns a CSS id selector for id.
func (id ID) Selector() string {
	if id.IsZero() {
		return ""
	}
	return "#" + cssEscape(id.text)
}

// Split returns the prefix and token of an identifier payload produced by
// this package. It reports false for text without a separator.
func Split(text string) (prefix, token string, ok bool) {
	i := strings.LastIndex(text, Separator)
	if i < 0 || i+len(Separator) == len(text) {
		return "", "", false
	}
	return text[:i], text[i+len(Separator):], true
}

func newID(site, prefix, token string) ID {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return ID{site: site, prefix: prefix, token: token, text: prefix + Separator + token}
}

func invalidTokenError(tok string) error {
	return fmt.Errorf("%w: %q", ErrInvalidToken, tok)
}

// cssEscape escapes a leading digit, the only character our payloads can
// carry that is not a valid start of a CSS identifier.
func cssEscape(s string) string {
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		return fmt.Sprintf(`\3%c `, s[0]) + s[1:]
	}
	return s
}
