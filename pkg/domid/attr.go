//go:build !domid_noattr

package domid

// AttributeValue returns the payload in the form attribute-binding APIs such
// as view.ID accept directly.
func (id ID) AttributeValue() string {
	return id.text
}
