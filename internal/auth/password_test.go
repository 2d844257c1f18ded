package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)

	second, err := HashPassword("secret123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NotEqual(t, "secret123", first)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	require.True(t, VerifyPassword("secret123", hash))
	require.False(t, VerifyPassword("wrong-password", hash))
	require.False(t, VerifyPassword("secret123", "not-a-hash"))
}
