// Package catalog reads id catalog files and generates the Go enum that
// backs them. A catalog is a fixed list of static element ids, each
// addressable by a generated constant.
package catalog

import (
	"encoding/hex"
	"fmt"
	"go/token"
	"os"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/mithrel/domid/pkg/domid"
)

// DefaultType is the generated type name when the catalog names none.
const DefaultType = "Ids"

// Catalog is the on-disk catalog description.
//
//	package: ids
//	type: Ids
//	import: example.com/app/ids
//	ids:
//	  - language-selector
//	  - preview-download-svg-button
type Catalog struct {
	Package string   `yaml:"package"`
	Type    string   `yaml:"type"`
	Import  string   `yaml:"import"`
	IDs     []string `yaml:"ids"`
}

// Entry is one catalog id and the identifier of its constant.
type Entry struct {
	Ident string
	Value string
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads a catalog without applying defaults or validating it.
func Decode(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}

// Parse decodes a catalog, defaults its type and validates it.
func Parse(data []byte) (*Catalog, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem in the catalog at once.
func (c *Catalog) Validate() error {
	var result *multierror.Error
	if !token.IsIdentifier(c.Package) {
		result = multierror.Append(result, fmt.Errorf("package %q is not a valid Go package name", c.Package))
	}
	if !token.IsIdentifier(c.Type) || !token.IsExported(c.Type) {
		result = multierror.Append(result, fmt.Errorf("type %q is not an exported Go identifier", c.Type))
	}
	if len(c.IDs) == 0 {
		result = multierror.Append(result, fmt.Errorf("ids: catalog declares no ids"))
	}

	seen := make(map[string]int, len(c.IDs))
	idents := make(map[string]string, len(c.IDs))
	reserved := map[string]string{
		c.Type:         "the catalog type",
		c.Type + "All": "the generated " + c.Type + "All function",
	}
	for i, id := range c.IDs {
		if err := checkID(id); err != nil {
			result = multierror.Append(result, fmt.Errorf("ids[%d]: %w", i, err))
			continue
		}
		if j, dup := seen[id]; dup {
			result = multierror.Append(result, fmt.Errorf("ids[%d]: %q duplicates ids[%d]", i, id, j))
			continue
		}
		seen[id] = i

		ident, err := domid.PascalCase(id)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("ids[%d]: %w", i, err))
			continue
		}
		if !token.IsIdentifier(ident) {
			result = multierror.Append(result, fmt.Errorf("ids[%d]: %q does not form a Go identifier (got %q)", i, id, ident))
			continue
		}
		if what, taken := reserved[ident]; taken {
			result = multierror.Append(result, fmt.Errorf("ids[%d]: %q becomes %s, which is %s", i, id, ident, what))
			continue
		}
		if prev, clash := idents[ident]; clash {
			result = multierror.Append(result, fmt.Errorf("ids[%d]: %q and %q both become %s", i, prev, id, ident))
			continue
		}
		idents[ident] = id
	}
	return result.ErrorOrNil()
}

func checkID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("id must not be empty")
	case strings.Contains(id, domid.Separator):
		return fmt.Errorf("%q contains %q, which is reserved for allocated ids", id, domid.Separator)
	case strings.IndexFunc(id, unicode.IsSpace) >= 0:
		return fmt.Errorf("%q contains whitespace", id)
	}
	for i := 0; i < len(id); i++ {
		if id[i] >= 0x80 {
			return fmt.Errorf("%q contains non-ASCII characters", id)
		}
	}
	return nil
}

// Entries returns the catalog ids with their constant identifiers, in file
// order. The catalog must be valid.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.IDs))
	for _, id := range c.IDs {
		ident, _ := domid.PascalCase(id)
		out = append(out, Entry{Ident: ident, Value: id})
	}
	return out
}

// Lookup returns the entry for a catalog id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	for _, e := range c.Entries() {
		if e.Value == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Fingerprint is a short blake3 digest of the catalog content. It changes
// whenever an id, the type or the package changes.
func (c *Catalog) Fingerprint() string {
	h := blake3.New()
	h.Write([]byte(c.Package))
	h.Write([]byte{0})
	h.Write([]byte(c.Type))
	h.Write([]byte{0})
	for _, id := range c.IDs {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:12])
}
