package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	s, err := String(24)
	require.NoError(t, err)
	assert.Len(t, s, 24)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
	}

	other, err := String(24)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

func TestStringRejectsNonPositiveLength(t *testing.T) {
	_, err := String(0)
	assert.Error(t, err)
}
