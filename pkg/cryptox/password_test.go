package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetPepperPath(t.TempDir() + "/pepper")

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	require.Error(t, VerifyPassword("wrong password", hash))
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	require.Error(t, VerifyPassword("whatever", "not-a-phc-string"))
	require.Error(t, VerifyPassword("whatever", "$argon2id$v=19$m=x$bad$bad"))
}

func TestGenerateHex(t *testing.T) {
	t.Parallel()

	tok, err := GenerateHex(TokenSize128)
	require.NoError(t, err)
	require.Len(t, tok, 32)

	_, err = GenerateHex(0)
	require.Error(t, err)
}

func TestGeneratePadding(t *testing.T) {
	t.Parallel()

	p, err := GeneratePadding(128)
	require.NoError(t, err)
	require.NotEmpty(t, p)

	_, err = GeneratePadding(-1)
	require.Error(t, err)
}
