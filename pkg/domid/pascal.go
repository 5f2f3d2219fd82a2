package domid

import (
	"fmt"
	"strings"
)

// PascalCase converts an ASCII name to PascalCase. Any non-alphanumeric
// character starts a new word and is dropped; a digit also ends the current
// word, so "foo5bar" becomes "Foo5Bar". Letters inside a word keep their case.
func PascalCase(input string) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	boundary := true
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c >= 0x80:
			return "", fmt.Errorf("%w: %q", ErrNonASCIIName, input)
		case isDigit(c):
			b.WriteByte(c)
			boundary = true
		case isLetter(c):
			if boundary && c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			b.WriteByte(c)
			boundary = false
		default:
			boundary = true
		}
	}
	return b.String(), nil
}

func checkASCII(name string) error {
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return fmt.Errorf("%w: %q", ErrNonASCIIName, name)
		}
	}
	return nil
}

func mustASCII(name string) {
	if err := checkASCII(name); err != nil {
		panic(err)
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
