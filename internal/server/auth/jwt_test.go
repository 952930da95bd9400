package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-123", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestGetUserIDFromToken_WrongKey(t *testing.T) {
	token, err := GenerateToken("user-123", []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-123", []byte("k"), -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("k"))
	assert.Error(t, err)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.token", []byte("k"))
	assert.Error(t, err)
}
