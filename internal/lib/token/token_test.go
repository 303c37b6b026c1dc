package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, err := m.Generate(42, "jo@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("different-secret", time.Hour)

	signed, err := m.Generate(42, "jo@example.com")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	signed, err := m.Generate(42, "jo@example.com")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.Error(t, err)
}
