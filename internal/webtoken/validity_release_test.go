//go:build !debug

package webtoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleaseBuildHasNoLongDefault(t *testing.T) {
	assert.Equal(t, MinValidityMinutes, ClampValidity(0, 0))
	assert.Equal(t, MinValidityMinutes, ClampValidity(-10, 0))
}
