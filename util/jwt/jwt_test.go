package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
}

func TestParse_NoBearerPrefix(t *testing.T) {
	tok, err := Issue("secret", 42, 1)
	require.NoError(t, err)

	claims, err := ParseAuth(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 42, 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other")
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Issue("secret", 42, -1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "secret")
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)
	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}
