package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/logging"
	"github.com/igwenababa1/scbvault/internal/storage"
)

func newTestManager(t *testing.T, kv storage.Repository, opts ...Option) *Manager {
	t.Helper()
	return NewManager(kv, logging.NewJSONLogger(io.Discard), opts...)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemoryRepository()
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := newTestManager(t, kv, WithClock(func() time.Time { return ts }))

	require.NoError(t, m.Save(ctx, true, "dashboard"))

	snap, err := m.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.IsLoggedIn)
	assert.Equal(t, "dashboard", snap.View)
	assert.Equal(t, ts, snap.Timestamp)
}

func TestLoad_AbsentReturnsNil(t *testing.T) {
	m := newTestManager(t, storage.NewInMemoryRepository())

	snap, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLoad_UnreadableSnapshotIsDropped(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemoryRepository()
	require.NoError(t, kv.Set(ctx, common.KeyShellSnapshot, []byte("{broken")))

	m := newTestManager(t, kv)
	snap, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	raw, err := kv.Get(ctx, common.KeyShellSnapshot)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestOffer_LandingStateIsNotOffered(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, storage.NewInMemoryRepository())

	require.NoError(t, m.Save(ctx, false, "landing"))

	snap, err := m.Offer(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.False(t, m.PromptPending())
}

func TestOffer_SuppressesSaveUntilResolved(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemoryRepository()
	m := newTestManager(t, kv)

	require.NoError(t, m.Save(ctx, true, "dashboard"))

	offered, err := m.Offer(ctx)
	require.NoError(t, err)
	require.NotNil(t, offered)
	require.True(t, m.PromptPending())

	// Saves while the prompt is open must not overwrite the offered data.
	require.NoError(t, m.Save(ctx, false, "landing"))

	restored, err := m.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "dashboard", restored.View)
	assert.True(t, restored.IsLoggedIn)
	assert.False(t, m.PromptPending())

	// After resolution, saves go through again.
	require.NoError(t, m.Save(ctx, false, "landing"))
	snap, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "landing", snap.View)
}

func TestDiscard_ClearsSnapshotAndViewButNotSession(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemoryRepository()
	m := newTestManager(t, kv)

	require.NoError(t, m.Save(ctx, true, "dashboard"))
	require.NoError(t, m.SetDashboardView(ctx, "cards"))
	require.NoError(t, kv.Set(ctx, common.KeySessionToken, []byte("user-1")))

	_, err := m.Offer(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Discard(ctx))
	assert.False(t, m.PromptPending())

	snap, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	view, err := m.DashboardView(ctx)
	require.NoError(t, err)
	assert.Empty(t, view)

	// The auth session pointer is untouched by default.
	token, err := kv.Get(ctx, common.KeySessionToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("user-1"), token)
}

func TestDiscard_WithSessionTermination(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemoryRepository()

	var loggedOut bool
	m := newTestManager(t, kv, WithSessionTermination(func(context.Context) error {
		loggedOut = true
		return nil
	}))

	require.NoError(t, m.Save(ctx, true, "dashboard"))
	require.NoError(t, m.Discard(ctx))
	assert.True(t, loggedOut)
}

func TestDashboardView_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, storage.NewInMemoryRepository())

	view, err := m.DashboardView(ctx)
	require.NoError(t, err)
	assert.Empty(t, view)

	require.NoError(t, m.SetDashboardView(ctx, "investments"))
	view, err = m.DashboardView(ctx)
	require.NoError(t, err)
	assert.Equal(t, "investments", view)
}
