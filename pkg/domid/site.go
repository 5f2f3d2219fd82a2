package domid

import (
	"encoding/hex"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/zeebo/blake3"
)

// Site is an allocation site: one fixed place in the program that requests
// identifiers. A Site has no per-instance state; every call to New draws a
// fresh token.
type Site struct {
	key    string
	name   string
	prefix string
	conv   *caseConv
}

// caseConv is a letter-case transformation applied to name segments only.
type caseConv struct {
	name  string
	apply func(string) string
	// check reports the inputs apply would panic on.
	check func(string) error
}

// SiteOption configures a Site.
type SiteOption func(*siteOptions)

type siteOptions struct {
	name  string
	convs []*caseConv
}

// WithName sets the human-readable name segment of every identifier drawn from
// the site.
func WithName(name string) SiteOption {
	return func(o *siteOptions) {
		o.name = name
	}
}

func withCase(c *caseConv) SiteOption {
	return func(o *siteOptions) {
		o.convs = append(o.convs, c)
	}
}

// sites is the process-wide key registry.
var sites = struct {
	mu sync.Mutex
	m  map[string]*Site
}{m: map[string]*Site{}}

// NewSite declares an allocation site under key. Keys are unique for the
// lifetime of the process.
func NewSite(key string, opts ...SiteOption) (*Site, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	s, err := buildSite(key, opts)
	if err != nil {
		return nil, err
	}
	sites.mu.Lock()
	defer sites.mu.Unlock()
	if _, ok := sites.m[key]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSite, key)
	}
	sites.m[key] = s
	return s, nil
}

// MustSite is like NewSite but panics on error. It is meant for package-level
// variable declarations.
func MustSite(key string, opts ...SiteOption) *Site {
	s, err := NewSite(key, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Here declares (or returns the already declared) site keyed by the caller's
// call instruction. Calling Here repeatedly from the same call yields the same
// site, so it is safe inside component constructors and loops. Two calls on
// one source line are distinct sites. Re-requesting a site with different
// options panics with ErrIncompatibleOptions.
func Here(opts ...SiteOption) *Site {
	var pcs [1]uintptr
	if runtime.Callers(2, pcs[:]) == 0 {
		panic(ErrNoCaller)
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	key := locationKey(frame.File, frame.Line, pcs[0])

	s, err := buildSite(key, opts)
	if err != nil {
		panic(err)
	}

	sites.mu.Lock()
	defer sites.mu.Unlock()
	if prev, ok := sites.m[key]; ok {
		if prev.name != s.name || prev.conv != s.conv {
			panic(fmt.Errorf("%w: site at %s:%d redeclared with different options", ErrIncompatibleOptions, frame.File, frame.Line))
		}
		return prev
	}
	sites.m[key] = s
	return s
}

// Lookup returns the site declared under key.
func Lookup(key string) (*Site, bool) {
	sites.mu.Lock()
	defer sites.mu.Unlock()
	s, ok := sites.m[key]
	return s, ok
}

func buildSite(key string, opts []SiteOption) (*Site, error) {
	var o siteOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.convs) > 1 {
		names := make([]string, 0, len(o.convs))
		for _, c := range o.convs {
			names = append(names, c.name)
		}
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleOptions, strings.Join(names, " and "))
	}
	if err := validateName(o.name); err != nil {
		return nil, err
	}
	s := &Site{key: key, name: o.name}
	if len(o.convs) == 1 {
		s.conv = o.convs[0]
		if o.name != "" && s.conv.check != nil {
			if err := s.conv.check(o.name); err != nil {
				return nil, err
			}
		}
	}
	s.prefix = s.render(o.name)
	return s, nil
}

func validateName(name string) error {
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}

// locationKey hashes a call location into a short site key, stable for the
// lifetime of the process.
func locationKey(file string, line int, pc uintptr) string {
	h := blake3.New()
	_, _ = h.Write([]byte(file))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.Itoa(line)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(pc), 16)))
	return "@" + hex.EncodeToString(h.Sum(nil)[:8])
}

// Key returns the site key.
func (s *Site) Key() string { return s.key }

// Name returns the static name segment, if any.
func (s *Site) Name() string { return s.name }

// New draws a fresh identifier. Each call advances the process-wide source
// exactly once.
func (s *Site) New() ID {
	return newID(s.key, s.prefix, nextToken())
}

// Named draws a fresh identifier whose name segment is name instead of the
// site's static name. The site's case conversion still applies.
// It panics if name contains whitespace.
func (s *Site) Named(name string) ID {
	if err := validateName(name); err != nil {
		panic(err)
	}
	return newID(s.key, s.render(name), nextToken())
}

// render applies the site's case conversion to a name segment. The token is
// never passed through here.
func (s *Site) render(name string) string {
	if name == "" || s.conv == nil {
		return name
	}
	return s.conv.apply(name)
}

// anonymous backs the package-level New.
var anonymous = MustSite("domid.anonymous")

// New draws an identifier with the given name segment from a shared anonymous
// site. Prefer a dedicated Site so findings and debugging can point at it.
func New(name string) ID {
	return anonymous.Named(name)
}
