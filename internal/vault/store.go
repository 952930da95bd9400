package vault

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/logging"
	"github.com/igwenababa1/scbvault/internal/models"
	"github.com/igwenababa1/scbvault/internal/storage"
)

// Store is the durable mapping from email to UserRecord. All lookups return
// clones; mutations rewrite the full blob. The read-modify-write-save
// sequence is serialized per instance, since this host runs concurrent HTTP
// handlers against a single vault.
type Store struct {
	kv     storage.Repository
	codec  *Codec
	logger logging.Logger

	mu    sync.Mutex
	users []*models.UserRecord // insertion order; index 0 is the oldest record
}

func NewStore(kv storage.Repository, codec *Codec, logger logging.Logger) *Store {
	return &Store{kv: kv, codec: codec, logger: logger}
}

// Load reads the persisted blob. An absent or unreadable blob is replaced
// with a freshly seeded single-user vault, which is persisted immediately;
// decode failures never propagate to the caller. Only storage I/O failures
// are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, common.KeyVaultBlob)
	if err != nil {
		return fmt.Errorf("reading vault blob: %w", err)
	}
	if raw != nil {
		users, err := s.codec.Decode(raw)
		if err == nil {
			s.users = users
			return nil
		}
		s.logger.Warn(ctx, "vault blob unreadable, reseeding", "error", err)
	}

	s.users = []*models.UserRecord{SeedUser()}
	return s.saveLocked(ctx)
}

// Save rewrites the full blob from the in-memory set.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := s.codec.Encode(s.users)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, common.KeyVaultBlob, data); err != nil {
		return fmt.Errorf("writing vault blob: %w", err)
	}
	return nil
}

// FindByEmail looks a record up by case-insensitive email match.
func (s *Store) FindByEmail(email string) (*models.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), true
		}
	}
	return nil, false
}

func (s *Store) FindByID(id string) (*models.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return nil, false
}

// First returns the oldest record. Used by the single-user demo fallback.
func (s *Store) First() (*models.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) == 0 {
		return nil, false
	}
	return s.users[0].Clone(), true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Add appends a new record and persists the vault. Fails with
// common.ErrorAlreadyExists when the email is already taken
// (case-insensitively); the vault is left unchanged in that case.
func (s *Store) Add(ctx context.Context, user *models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return common.ErrorAlreadyExists
		}
	}
	s.users = append(s.users, user.Clone())
	if err := s.saveLocked(ctx); err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}
	return nil
}

// Update replaces the record with the same id and persists the vault.
func (s *Store) Update(ctx context.Context, user *models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			prev := s.users[i]
			s.users[i] = user.Clone()
			if err := s.saveLocked(ctx); err != nil {
				s.users[i] = prev
				return err
			}
			return nil
		}
	}
	return common.ErrorNotFound
}
