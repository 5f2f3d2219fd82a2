package domid

import "errors"

var (
	// ErrEmptyKey is returned when a site is declared without a key.
	ErrEmptyKey = errors.New("domid: empty site key")
	// ErrDuplicateSite is returned when two sites are declared with the same key.
	ErrDuplicateSite = errors.New("domid: duplicate site key")
	// ErrIncompatibleOptions is returned when site options cannot be combined.
	ErrIncompatibleOptions = errors.New("domid: incompatible site options")
	// ErrInvalidName is returned for name segments that cannot appear in an id.
	ErrInvalidName = errors.New("domid: invalid name segment")
	// ErrNonASCIIName is the panic value (wrapped) for case conversion of non-ASCII input.
	ErrNonASCIIName = errors.New("domid: name segment contains non-ASCII characters")
	// ErrNilSource is returned by SetSource(nil).
	ErrNilSource = errors.New("domid: nil source")
	// ErrSourceInUse is returned by SetSource once an identifier has been drawn.
	ErrSourceInUse = errors.New("domid: source already in use")
	// ErrInvalidToken is the panic value (wrapped) when a source returns a malformed token.
	ErrInvalidToken = errors.New("domid: source returned an invalid token")
	// ErrNoCaller is the panic value when Here cannot resolve its caller.
	ErrNoCaller = errors.New("domid: cannot resolve caller location")
)
