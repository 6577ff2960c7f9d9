package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	s := RandString(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(letters, r), "unexpected %q", r)
	}
	assert.NotEqual(t, RandString(16), RandString(16))
}
