package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hashed, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.NoError(t, Compare(hashed, "correct horse battery staple"))
	assert.Error(t, Compare(hashed, "wrong password"))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("same input")
	require.NoError(t, err)
	b, err := Hash("same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
