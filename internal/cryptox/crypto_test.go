package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	encoded := HashPassword([]byte("s3cret"))
	require.True(t, strings.HasPrefix(encoded, "argon2id$"))

	ok, err := VerifyPassword(encoded, []byte("s3cret"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("wrong"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a := HashPassword([]byte("same"))
	b := HashPassword([]byte("same"))
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []string{
		"",
		"argon2id$only-two",
		"bcrypt$a$b",
		"argon2id$!!!$AAAA",
		"argon2id$AAAA$!!!",
	}
	for _, encoded := range tests {
		_, err := VerifyPassword(encoded, []byte("x"))
		assert.ErrorIs(t, err, ErrMalformedHash, "hash: %q", encoded)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveBlobKey([]byte("passphrase"), []byte("0123456789abcdef"))
	plaintext := []byte(`[{"id":"u1"}]`)

	sealed, err := Seal(plaintext, key)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestOpen_TamperedDataFails(t *testing.T) {
	key := DeriveBlobKey([]byte("passphrase"), []byte("0123456789abcdef"))
	sealed, err := Seal([]byte("payload"), key)
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xFF
	_, err = Open(sealed, key)
	assert.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	key := DeriveBlobKey([]byte("p"), []byte("0123456789abcdef"))
	_, err := Open([]byte{0x01}, key)
	assert.ErrorIs(t, err, ErrSealedTooShort)
}
