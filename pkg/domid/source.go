package domid

import (
	"crypto/rand"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Source mints uniqueness tokens.
//
// Implementations must be safe for concurrent use and must never return the
// same token twice within one process. Tokens must be non-empty, must not start
// with '-' and must not contain "--".
type Source interface {
	Next() string
}

// SourceFunc adapts an ordinary function to Source.
type SourceFunc func() string

// Next calls f.
func (f SourceFunc) Next() string { return f() }

// CounterSource is an atomic counter rendered in base 36.
type CounterSource struct {
	n atomic.Uint64
}

// NewCounterSource returns a counter whose first token is start+1.
// A host framework that hydrates server-rendered markup shares one offset
// between both passes so the "same" instance receives the same token.
func NewCounterSource(start uint64) *CounterSource {
	c := &CounterSource{}
	c.n.Store(start)
	return c
}

// Next advances the counter exactly once.
func (c *CounterSource) Next() string {
	return strconv.FormatUint(c.n.Add(1), 36)
}

// Last reports the most recently issued value without advancing.
func (c *CounterSource) Last() uint64 {
	return c.n.Load()
}

// UUIDSource returns a source of random version 4 UUIDs.
func UUIDSource() Source {
	return SourceFunc(uuid.NewString)
}

// ULIDSource returns a source of lower-cased ULIDs drawn from monotonic
// entropy, so tokens minted within the same millisecond still increase.
func ULIDSource() Source {
	return &ulidSource{entropy: ulid.Monotonic(rand.Reader, 0)}
}

type ulidSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (s *ulidSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Now(), s.entropy).String())
}

// process-wide source state; see SetSource.
var (
	defaultSource = NewCounterSource(0)
	active        atomic.Pointer[sourceBox]
	drawn         atomic.Bool
	setMu         sync.Mutex
)

// atomic.Pointer needs a concrete type, so the interface travels in a box.
type sourceBox struct {
	src Source
}

func init() {
	active.Store(&sourceBox{src: defaultSource})
}

// SetSource replaces the process-wide source. It must be called before the
// first identifier is drawn; afterwards it returns ErrSourceInUse.
func SetSource(src Source) error {
	if src == nil {
		return ErrNilSource
	}
	setMu.Lock()
	defer setMu.Unlock()
	if drawn.Load() {
		return ErrSourceInUse
	}
	active.Store(&sourceBox{src: src})
	return nil
}

// CurrentSource returns the process-wide source.
func CurrentSource() Source {
	return active.Load().src
}

// nextToken draws one token from the active source and validates it.
func nextToken() string {
	if !drawn.Load() {
		// Serialise the first draw with SetSource so a concurrent swap cannot
		// slip in between reading the source and marking it used.
		setMu.Lock()
		drawn.Store(true)
		setMu.Unlock()
	}
	tok := active.Load().src.Next()
	if !validToken(tok) {
		panic(invalidTokenError(tok))
	}
	return tok
}

func validToken(tok string) bool {
	return tok != "" && tok[0] != '-' && !strings.Contains(tok, Separator)
}
