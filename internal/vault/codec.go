// Package vault implements the persisted mapping of user records: a single
// blob in the local key-value store, loaded at startup and rewritten in full
// on every mutation.
package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/cryptox"
	"github.com/igwenababa1/scbvault/internal/models"
)

// sealedMagic prefixes blobs sealed with AES-GCM. Plaintext blobs are a bare
// JSON array and never start with these bytes.
var sealedMagic = []byte("SCBV1")

var (
	ErrSealedVault    = errors.New("vault blob is sealed but no passphrase is configured")
	ErrMalformedVault = errors.New("malformed vault blob")
)

type sealedEnvelope struct {
	Salt []byte `json:"salt"`
	Data []byte `json:"data"`
}

// Codec converts the in-memory user set to and from its at-rest form.
// With an empty passphrase the blob is plaintext JSON; otherwise it is
// sealed with AES-256-GCM under an argon2id-derived key. The old build's
// fixed-key obfuscation is intentionally not reproduced.
type Codec struct {
	passphrase []byte
}

func NewCodec(passphrase []byte) *Codec {
	return &Codec{passphrase: passphrase}
}

func (c *Codec) Encode(users []*models.UserRecord) ([]byte, error) {
	plain, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("marshaling vault: %w", err)
	}
	if len(c.passphrase) == 0 {
		return plain, nil
	}

	salt := common.GenerateRandByteArray(16)
	sealed, err := cryptox.Seal(plain, cryptox.DeriveBlobKey(c.passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("sealing vault: %w", err)
	}
	env, err := json.Marshal(sealedEnvelope{Salt: salt, Data: sealed})
	if err != nil {
		return nil, fmt.Errorf("marshaling sealed envelope: %w", err)
	}
	return append(append([]byte{}, sealedMagic...), env...), nil
}

func (c *Codec) Decode(data []byte) ([]*models.UserRecord, error) {
	plain := data
	if bytes.HasPrefix(data, sealedMagic) {
		if len(c.passphrase) == 0 {
			return nil, ErrSealedVault
		}
		var env sealedEnvelope
		if err := json.Unmarshal(data[len(sealedMagic):], &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedVault, err)
		}
		opened, err := cryptox.Open(env.Data, cryptox.DeriveBlobKey(c.passphrase, env.Salt))
		if err != nil {
			return nil, fmt.Errorf("opening sealed vault: %w", err)
		}
		plain = opened
	}

	var users []*models.UserRecord
	if err := json.Unmarshal(plain, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVault, err)
	}
	for _, u := range users {
		if u == nil || u.ID == "" || u.Email == "" {
			return nil, ErrMalformedVault
		}
	}
	return users, nil
}
