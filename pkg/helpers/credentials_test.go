package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCredentialDeterministic(t *testing.T) {
	h1 := HashCredential("salt-a", "hunter22")
	h2 := HashCredential("salt-a", "hunter22")
	assert.Equal(t, h1, h2)
	assert.NotEmpty(t, h1)
}

func TestHashCredentialSaltChangesOutput(t *testing.T) {
	h1 := HashCredential("salt-a", "hunter22")
	h2 := HashCredential("salt-b", "hunter22")
	assert.NotEqual(t, h1, h2)
}

func TestHashCredentialIsNotPlaintext(t *testing.T) {
	h := HashCredential("salt", "hunter22")
	assert.NotContains(t, h, "hunter22")
}

func TestCredentialEqual(t *testing.T) {
	h := HashCredential("salt", "pw")
	assert.True(t, CredentialEqual(h, HashCredential("salt", "pw")))
	assert.False(t, CredentialEqual(h, HashCredential("salt", "other")))
}

func TestRandomTokenIndependentPerCall(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := RandomToken()
		require.NoError(t, err)
		require.NotEmpty(t, tok)
		require.False(t, seen[tok], "token collision")
		seen[tok] = true
	}
}

func TestSessionTokenFreshPerLogin(t *testing.T) {
	cred := HashCredential("salt", "pw")
	t1, err := SessionToken(cred)
	require.NoError(t, err)
	t2, err := SessionToken(cred)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestGenOTPCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
