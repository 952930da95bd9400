package vault

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igwenababa1/scbvault/internal/models"
)

func sampleUsers() []*models.UserRecord {
	profile := models.Profile{FullName: "Jane Doe", Email: "jane@x.com", Phone: "555-0100"}
	return []*models.UserRecord{{
		ID:           "u-1",
		Email:        "jane@x.com",
		PasswordHash: "argon2id$c2FsdA$aGFzaA",
		Profile:      profile,
		Settings:     models.Settings{Profile: profile, Preferences: map[string]any{"theme": "dark"}},
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
}

func TestCodec_PlaintextRoundTrip(t *testing.T) {
	c := NewCodec(nil)
	users := sampleUsers()

	data, err := c.Encode(users)
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0]) // bare JSON array at rest

	decoded, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, users, decoded)
}

func TestCodec_SealedRoundTrip(t *testing.T) {
	c := NewCodec([]byte("passphrase"))
	users := sampleUsers()

	data, err := c.Encode(users)
	require.NoError(t, err)
	assert.Equal(t, sealedMagic, data[:len(sealedMagic)])
	assert.NotContains(t, string(data), "jane@x.com")

	decoded, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, users, decoded)
}

func TestCodec_SealedWithoutPassphrase(t *testing.T) {
	data, err := NewCodec([]byte("p")).Encode(sampleUsers())
	require.NoError(t, err)

	_, err = NewCodec(nil).Decode(data)
	assert.ErrorIs(t, err, ErrSealedVault)
}

func TestCodec_WrongPassphraseFails(t *testing.T) {
	data, err := NewCodec([]byte("right")).Encode(sampleUsers())
	require.NoError(t, err)

	_, err = NewCodec([]byte("wrong")).Decode(data)
	assert.Error(t, err)
}

func TestCodec_RejectsGarbage(t *testing.T) {
	tests := [][]byte{
		[]byte("not json"),
		[]byte(`{"object":"not an array"}`),
		[]byte(`[{"id":"","email":""}]`),
		[]byte(`[null]`),
	}
	for _, data := range tests {
		_, err := NewCodec(nil).Decode(data)
		assert.Error(t, err, "data: %s", data)
	}
}
