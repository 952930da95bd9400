// Package services contains the application services of the vault core.
// This file implements the auth service: the only mutation/query surface
// onto the vault store, plus session pointer bookkeeping.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/cryptox"
	"github.com/igwenababa1/scbvault/internal/logging"
	"github.com/igwenababa1/scbvault/internal/models"
	"github.com/igwenababa1/scbvault/internal/storage"
	"github.com/igwenababa1/scbvault/internal/vault"
)

// DefaultCredential is assigned on register when no password is supplied,
// matching the demo onboarding flow.
const DefaultCredential = "Welcome1"

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithLatency adds an artificial delay before authenticate, register, and
// updateProfile complete, approximating the demo's fake network round trip.
// The delay honors context cancellation.
func WithLatency(d time.Duration) AuthOption {
	return func(s *AuthService) { s.latency = d }
}

// WithSingleUserFallback makes CurrentUser fall back to the first vault
// record when no session can be resolved. Demo-mode behavior; off by default.
func WithSingleUserFallback() AuthOption {
	return func(s *AuthService) { s.singleUserFallback = true }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// AuthService exposes authenticate, register, update-profile,
// get-current-user, and logout over an injected vault store and key-value
// repository.
//
// Session state machine: NoSession -> (Authenticate | Register success) ->
// HasSession -> Logout -> NoSession. UpdateProfile is only valid in
// HasSession.
type AuthService struct {
	vault  *vault.Store
	kv     storage.Repository
	logger logging.Logger
	now    func() time.Time

	latency            time.Duration
	singleUserFallback bool

	mu       sync.Mutex
	current  *models.UserRecord
	inFlight bool
}

func NewAuthService(v *vault.Store, kv storage.Repository, logger logging.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{vault: v, kv: kv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin marks an authenticate/register call as in flight. The browser shell
// never guarded against double submission; the service boundary does.
func (s *AuthService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return common.ErrorOperationInFlight
	}
	s.inFlight = true
	return nil
}

func (s *AuthService) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Authenticate looks the user up by case-insensitive email and verifies the
// credential. On success the session pointer is persisted and the full
// record returned. Fails with common.ErrorNotFound when no record matches
// and common.ErrorInvalidCredential on a mismatch; transports should
// collapse both into one generic message.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.UserRecord, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	user, ok := s.vault.FindByEmail(email)
	if !ok {
		return nil, common.ErrorNotFound
	}
	match, err := cryptox.VerifyPassword(user.PasswordHash, []byte(password))
	if err != nil {
		return nil, fmt.Errorf("verifying credential: %w", err)
	}
	if !match {
		return nil, common.ErrorInvalidCredential
	}

	if err := s.setSession(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user authenticated", "id", user.ID)
	return user, nil
}

// Register creates a new record with a fresh id, the default credential if
// none was supplied, a profile synthesized from the inputs, and settings
// seeded from the default template with that profile overlaid. On success
// the vault and session pointer are persisted and the record returned.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (*models.UserRecord, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	if _, ok := s.vault.FindByEmail(reg.Email); ok {
		return nil, common.ErrorAlreadyExists
	}

	password := reg.Password
	if password == "" {
		password = DefaultCredential
	}

	profile := models.Profile{
		FullName: strings.TrimSpace(reg.FirstName + " " + reg.LastName),
		Email:    reg.Email,
		Phone:    reg.Phone,
		Address:  reg.Country,
	}
	user := &models.UserRecord{
		ID:           uuid.NewString(),
		Email:        reg.Email,
		PasswordHash: cryptox.HashPassword([]byte(password)),
		Profile:      profile,
		Settings:     vault.DefaultSettings(profile),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.vault.Add(ctx, user); err != nil {
		return nil, err
	}
	if err := s.setSession(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user registered", "id", user.ID, "email", user.Email)
	return user.Clone(), nil
}

// UpdateProfile overwrites the active record's settings and derives the
// top-level profile from settings.profile, keeping both in sync. Requires a
// resolvable session.
func (s *AuthService) UpdateProfile(ctx context.Context, settings models.Settings) error {
	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	id, err := s.resolveSessionID(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return common.ErrorNoActiveSession
	}

	user, ok := s.vault.FindByID(id)
	if !ok {
		// Integrity violation: a live session points at a missing record.
		s.logger.Error(ctx, "vault record missing for active session", "id", id)
		return common.ErrorRecordCorruption
	}

	user.Settings = settings.Clone()
	user.Profile = settings.Profile
	if err := s.vault.Update(ctx, user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return nil
}

// CurrentUser resolves the active user: in-memory cache, then the persisted
// session pointer, then (in single-user demo mode) the first vault record.
// Absence is reported as (nil, nil), never as an error.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.UserRecord, error) {
	s.mu.Lock()
	cached := s.current.Clone()
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	raw, err := s.kv.Get(ctx, common.KeySessionToken)
	if err != nil {
		return nil, fmt.Errorf("reading session pointer: %w", err)
	}
	if len(raw) > 0 {
		if user, ok := s.vault.FindByID(string(raw)); ok {
			s.mu.Lock()
			s.current = user.Clone()
			s.mu.Unlock()
			return user, nil
		}
		// A pointer to a record that is gone counts as no session here.
		s.logger.Warn(ctx, "session pointer references unknown record", "id", string(raw))
	}

	if s.singleUserFallback {
		if user, ok := s.vault.First(); ok {
			return user, nil
		}
	}
	return nil, nil
}

// Logout clears the in-memory cache, the persisted session pointer, and the
// dashboard sub-view cache. Safe to call with no active session.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, common.KeySessionToken); err != nil {
		return fmt.Errorf("clearing session pointer: %w", err)
	}
	if err := s.kv.Delete(ctx, common.KeyDashboardView); err != nil {
		return fmt.Errorf("clearing dashboard view: %w", err)
	}
	return nil
}

func (s *AuthService) setSession(ctx context.Context, user *models.UserRecord) error {
	if err := s.kv.Set(ctx, common.KeySessionToken, []byte(user.ID)); err != nil {
		return fmt.Errorf("persisting session pointer: %w", err)
	}
	s.mu.Lock()
	s.current = user.Clone()
	s.mu.Unlock()
	return nil
}

func (s *AuthService) resolveSessionID(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.current != nil {
		id := s.current.ID
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	raw, err := s.kv.Get(ctx, common.KeySessionToken)
	if err != nil {
		return "", fmt.Errorf("reading session pointer: %w", err)
	}
	return string(raw), nil
}
