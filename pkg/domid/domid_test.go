package domid_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/domid/pkg/domid"
)

func TestGlobalUniqueness(t *testing.T) {
	header := domid.MustSite("test.uniqueness.header", domid.WithName("header"))
	footer := domid.MustSite("test.uniqueness.footer")

	const perWorker = 250
	const workers = 8 // 2000 draws in total

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, perWorker*workers)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			site := header
			if w%2 == 1 {
				site = footer
			}
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, site.New().String())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				if _, dup := seen[id]; dup {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = struct{}{}
			}
		}(w)
	}
	wg.Wait()
	assert.Len(t, seen, perWorker*workers)
}

func TestNameSegmentIndependence(t *testing.T) {
	a := domid.MustSite("test.names.a", domid.WithName("dialog"))
	b := domid.MustSite("test.names.b", domid.WithName("dialog"))

	x, y, z := a.New(), a.New(), b.New()
	assert.Equal(t, "dialog", x.Prefix())
	assert.Equal(t, x.Prefix(), z.Prefix())
	assert.NotEqual(t, x.String(), y.String())
	assert.NotEqual(t, x.String(), z.String())
	assert.NotEqual(t, y.String(), z.String())

	n1, n2 := domid.New("row"), domid.New("row")
	assert.NotEqual(t, n1, n2)
}

func TestPayloadShape(t *testing.T) {
	site := domid.MustSite("test.payload", domid.WithName("menu"))
	id := site.New()

	assert.Equal(t, "test.payload", id.Site())
	assert.Equal(t, "menu"+domid.Separator+id.Token(), id.String())
	assert.False(t, id.IsZero())

	prefix, token, ok := domid.Split(id.String())
	require.True(t, ok)
	assert.Equal(t, "menu", prefix)
	assert.Equal(t, id.Token(), token)

	var zero domid.ID
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
	assert.Empty(t, zero.Selector())
}

func TestUnnamedUsesDefaultPrefix(t *testing.T) {
	id := domid.MustSite("test.unnamed").New()
	assert.Equal(t, domid.DefaultPrefix, id.Prefix())
	assert.True(t, strings.HasPrefix(id.String(), domid.DefaultPrefix+domid.Separator))
}

func TestNamedOverridesStaticName(t *testing.T) {
	site := domid.MustSite("test.named", domid.WithName("static"))
	id := site.Named("dynamic")
	assert.Equal(t, "dynamic", id.Prefix())
	assert.Equal(t, "static", site.Name())

	assert.Equal(t, domid.DefaultPrefix, domid.MustSite("test.named.empty").Named("").Prefix())
	assert.Panics(t, func() { site.Named("two words") })
}

func TestNewSiteErrors(t *testing.T) {
	t.Run("empty key", func(t *testing.T) {
		_, err := domid.NewSite("")
		assert.ErrorIs(t, err, domid.ErrEmptyKey)
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := domid.NewSite("test.errors.dup")
		require.NoError(t, err)
		_, err = domid.NewSite("test.errors.dup")
		assert.ErrorIs(t, err, domid.ErrDuplicateSite)
		assert.Panics(t, func() { domid.MustSite("test.errors.dup") })
	})

	t.Run("whitespace in name", func(t *testing.T) {
		_, err := domid.NewSite("test.errors.space", domid.WithName("my id"))
		assert.ErrorIs(t, err, domid.ErrInvalidName)
	})

	t.Run("failed declarations do not reserve the key", func(t *testing.T) {
		_, err := domid.NewSite("test.errors.retry", domid.WithName("a b"))
		require.Error(t, err)
		_, err = domid.NewSite("test.errors.retry")
		assert.NoError(t, err)
	})
}

func TestHereReturnsOneSitePerLocation(t *testing.T) {
	var got []*domid.Site
	for i := 0; i < 3; i++ {
		got = append(got, domid.Here(domid.WithName("loop")))
	}
	assert.Same(t, got[0], got[1])
	assert.Same(t, got[1], got[2])
	assert.True(t, strings.HasPrefix(got[0].Key(), "@"))

	other := domid.Here()
	assert.NotEqual(t, got[0].Key(), other.Key())

	found, ok := domid.Lookup(other.Key())
	require.True(t, ok)
	assert.Same(t, other, found)

	a, b := got[0].New(), got[0].New()
	assert.NotEqual(t, a, b)
}

func TestHereDistinguishesCallsOnOneLine(t *testing.T) {
	a, b := domid.Here(domid.WithName("a")), domid.Here(domid.WithName("b"))
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, "b", b.Name())
	assert.NotSame(t, a, b)
}

func TestHereRejectsChangedOptions(t *testing.T) {
	var got []*domid.Site
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected an error panic")
		assert.ErrorIs(t, err, domid.ErrIncompatibleOptions)
		require.Len(t, got, 2)
		assert.Same(t, got[0], got[1])
	}()
	for _, name := range []string{"same", "same", "other"} {
		got = append(got, domid.Here(domid.WithName(name)))
	}
	t.Fatalf("expected a panic")
}

func TestSelectorEscapesLeadingDigit(t *testing.T) {
	id := domid.MustSite("test.selector", domid.WithName("9lives")).New()
	assert.Equal(t, `#\39 lives--`+id.Token(), id.Selector())

	plain := domid.MustSite("test.selector.plain", domid.WithName("nav")).New()
	assert.Equal(t, "#"+plain.String(), plain.Selector())
}

func ExampleSite_New() {
	restore := domid.SwapSourceForTest(domid.NewCounterSource(0))
	defer restore()

	site := domid.MustSite("example.menu", domid.WithName("menu"))
	fmt.Println(site.New())
	fmt.Println(site.New())
	// Output:
	// menu--1
	// menu--2
}
