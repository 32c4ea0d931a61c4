package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strconv"

	"golang.org/x/crypto/pbkdf2"
)

const (
	tokenBytes       = 32
	credentialIters  = 10000
	credentialKeyLen = 32
)

// HashCredential derives the stored credential from a per-user salt and a
// plaintext password using PBKDF2-SHA256. Deterministic: the same pair always
// produces the same output.
func HashCredential(salt, plaintext string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), credentialIters, credentialKeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// CredentialEqual compares two credential strings in constant time.
func CredentialEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RandomToken returns a high-entropy opaque string, used both as a per-user
// salt and as the random half of a session token. Each call is independent.
func RandomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SessionToken derives a fresh session token from the current stored
// credential plus new randomness, so two logins never produce the same token.
func SessionToken(storedCredential string) (string, error) {
	r, err := RandomToken()
	if err != nil {
		return "", err
	}
	return HashCredential(r, storedCredential), nil
}

// GenOTPCode returns a 6-digit code uniformly distributed in [100000, 999999].
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
