package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	require.NoError(t, CheckPassword(hash, "secret1"))
	require.Error(t, CheckPassword(hash, "secret2"))
}

func TestHashPassword_SaltPerHash(t *testing.T) {
	h1, err := HashPassword("same-input")
	require.NoError(t, err)
	h2, err := HashPassword("same-input")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.NoError(t, CheckPassword(h1, "same-input"))
	require.NoError(t, CheckPassword(h2, "same-input"))
}
