// Package cryptox implements credential hashing and optional sealing of the
// vault blob. Credentials are stored as salted argon2id hashes and verified
// in constant time; raw credentials are never persisted or compared.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/igwenababa1/scbvault/internal/common"
)

// argon2id parameters, shared by password hashing and blob key derivation.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32
	saltLen      = 16
)

var (
	ErrMalformedHash  = errors.New("malformed password hash")
	ErrSealedTooShort = errors.New("sealed blob too short")
)

// HashPassword derives an argon2id digest under a fresh random salt and
// encodes it as "argon2id$<b64 salt>$<b64 digest>".
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltLen)
	sum := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLen)
	return fmt.Sprintf("argon2id$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum))
}

// VerifyPassword re-derives the digest from candidate and the stored salt
// and compares in constant time.
func VerifyPassword(encoded string, candidate []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return false, ErrMalformedHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}
	got := argon2.IDKey(candidate, salt, argonTime, argonMemory, argonThreads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// DeriveBlobKey stretches a passphrase into an AES-256 key for sealing the
// vault blob. The salt is persisted alongside the ciphertext.
func DeriveBlobKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keyLen)
}

// Seal encrypts plaintext with AES-GCM under key and returns
// nonce||ciphertext. The key must be 16, 24, or 32 bytes.
func Seal(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return append(nonce, aesgcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// Open decrypts data produced by Seal.
func Open(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(data) < aesgcm.NonceSize() {
		return nil, ErrSealedTooShort
	}
	nonce, ciphertext := data[:aesgcm.NonceSize()], data[aesgcm.NonceSize():]
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
