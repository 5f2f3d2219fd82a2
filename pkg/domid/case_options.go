//go:build !domid_nocase

package domid

import "github.com/iancoleman/strcase"

var (
	kebabConv  = &caseConv{name: "kebab-case", apply: kebab, check: checkASCII}
	pascalConv = &caseConv{name: "PascalCase", apply: pascal, check: checkPascal}
)

// WithKebabCase converts the name segment to kebab-case ("myComponent" becomes
// "my-component"). Only the name is converted; the token is left alone.
// NewSite rejects a non-ASCII static name with ErrNonASCIIName; drawing with a
// non-ASCII name through Named panics.
func WithKebabCase() SiteOption {
	return withCase(kebabConv)
}

// WithPascalCase converts the name segment to PascalCase.
func WithPascalCase() SiteOption {
	return withCase(pascalConv)
}

func kebab(name string) string {
	mustASCII(name)
	return strcase.ToKebab(name)
}

func checkPascal(name string) error {
	_, err := PascalCase(name)
	return err
}

func pascal(name string) string {
	out, err := PascalCase(name)
	if err != nil {
		panic(err)
	}
	return out
}

func init() {
	kebabSite := MustSite("domid.template.kebab", WithKebabCase())
	templateFuncs["domidKebab"] = func(name ...string) string {
		return drawFor(kebabSite, name).String()
	}
}
