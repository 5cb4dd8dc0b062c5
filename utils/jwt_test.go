package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateJWT_RoundTrip(t *testing.T) {
	tok, err := GenerateJWT("64f1c0ffee0000000000abcd", testSecret, time.Hour)
	require.NoError(t, err)

	userID, err := VerifyJWT(tok, testSecret)
	require.NoError(t, err)
	require.Equal(t, "64f1c0ffee0000000000abcd", userID)
}

func TestVerifyJWT_Expired(t *testing.T) {
	tok, err := GenerateJWT("u1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWT(tok, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	tok, err := GenerateJWT("u1", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyJWT(tok, []byte("other-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWT_TamperedSignature(t *testing.T) {
	tok, err := GenerateJWT("u1", testSecret, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = VerifyJWT(tampered, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyJWT_Malformed(t *testing.T) {
	_, err := VerifyJWT("not.a.jwt", testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT("u1", nil, time.Hour)
	require.Error(t, err)
}
