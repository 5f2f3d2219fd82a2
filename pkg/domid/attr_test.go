//go:build !domid_noattr

package domid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mithrel/domid/pkg/domid"
)

func TestAttributeValueMatchesString(t *testing.T) {
	id := domid.MustSite("test.attr").New()
	assert.Equal(t, id.String(), id.AttributeValue())

	var v interface{ AttributeValue() string } = id
	assert.NotEmpty(t, v.AttributeValue())
}
