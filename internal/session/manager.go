// Package session implements the shell's session-restore protocol: the UI
// snapshot persisted separately from the auth session pointer, and the
// restore-or-discard exchange offered on startup.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/logging"
	"github.com/igwenababa1/scbvault/internal/models"
	"github.com/igwenababa1/scbvault/internal/storage"
)

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSessionTermination couples Discard to auth logout. The browser shell
// left the session pointer untouched on discard; that remains the default.
func WithSessionTermination(logout func(context.Context) error) Option {
	return func(m *Manager) { m.endSession = logout }
}

// Manager owns the shell UI snapshot and the dashboard sub-view cache.
type Manager struct {
	kv         storage.Repository
	logger     logging.Logger
	now        func() time.Time
	endSession func(context.Context) error

	mu            sync.Mutex
	promptPending bool
}

func NewManager(kv storage.Repository, logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{kv: kv, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load returns the persisted snapshot, or nil when absent. An unreadable
// snapshot is dropped: there is nothing meaningful to offer the user.
func (m *Manager) Load(ctx context.Context) (*models.ShellSnapshot, error) {
	raw, err := m.kv.Get(ctx, common.KeyShellSnapshot)
	if err != nil {
		return nil, fmt.Errorf("reading shell snapshot: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var snap models.ShellSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		m.logger.Warn(ctx, "shell snapshot unreadable, dropping", "error", err)
		if err := m.kv.Delete(ctx, common.KeyShellSnapshot); err != nil {
			return nil, fmt.Errorf("dropping shell snapshot: %w", err)
		}
		return nil, nil
	}
	return &snap, nil
}

// Offer loads the snapshot and, when it records prior non-landing state,
// marks the restore prompt as pending. While the prompt is pending, Save is
// suppressed so the data being offered cannot be overwritten.
func (m *Manager) Offer(ctx context.Context) (*models.ShellSnapshot, error) {
	snap, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.WorthRestoring() {
		return nil, nil
	}
	m.mu.Lock()
	m.promptPending = true
	m.mu.Unlock()
	return snap, nil
}

// PromptPending reports whether a restore prompt is awaiting resolution.
func (m *Manager) PromptPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.promptPending
}

// Save persists the snapshot on a shell state change. Calls made while the
// restore prompt is pending are dropped.
func (m *Manager) Save(ctx context.Context, isLoggedIn bool, view string) error {
	m.mu.Lock()
	pending := m.promptPending
	m.mu.Unlock()
	if pending {
		return nil
	}

	snap := models.ShellSnapshot{IsLoggedIn: isLoggedIn, View: view, Timestamp: m.now().UTC()}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling shell snapshot: %w", err)
	}
	if err := m.kv.Set(ctx, common.KeyShellSnapshot, data); err != nil {
		return fmt.Errorf("writing shell snapshot: %w", err)
	}
	return nil
}

// Restore resolves a pending prompt in favor of the saved state and returns
// it for the shell to reapply. Restoring never touches the auth session
// pointer; it must not silently re-authenticate anyone.
func (m *Manager) Restore(ctx context.Context) (*models.ShellSnapshot, error) {
	snap, err := m.Load(ctx)
	m.mu.Lock()
	m.promptPending = false
	m.mu.Unlock()
	return snap, err
}

// Discard resolves a pending prompt by clearing the snapshot and the
// dashboard sub-view cache. The auth session pointer is left as is unless
// the manager was built with WithSessionTermination.
func (m *Manager) Discard(ctx context.Context) error {
	m.mu.Lock()
	m.promptPending = false
	m.mu.Unlock()

	if err := m.kv.Delete(ctx, common.KeyShellSnapshot); err != nil {
		return fmt.Errorf("clearing shell snapshot: %w", err)
	}
	if err := m.kv.Delete(ctx, common.KeyDashboardView); err != nil {
		return fmt.Errorf("clearing dashboard view: %w", err)
	}
	if m.endSession != nil {
		return m.endSession(ctx)
	}
	return nil
}

// SetDashboardView caches the dashboard sub-view. The value is opaque to
// the manager.
func (m *Manager) SetDashboardView(ctx context.Context, view string) error {
	if err := m.kv.Set(ctx, common.KeyDashboardView, []byte(view)); err != nil {
		return fmt.Errorf("writing dashboard view: %w", err)
	}
	return nil
}

// DashboardView returns the cached sub-view, or "" when none is set.
func (m *Manager) DashboardView(ctx context.Context) (string, error) {
	raw, err := m.kv.Get(ctx, common.KeyDashboardView)
	if err != nil {
		return "", fmt.Errorf("reading dashboard view: %w", err)
	}
	return string(raw), nil
}
