package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumbay/aurumbay/internal/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"))

	// Loading before any save yields an empty snapshot.
	snap, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Users)

	userID := uuid.New()
	recipient := uuid.New()
	snap.Users = append(snap.Users, models.User{
		ID:       userID,
		Email:    "a@x.test",
		Username: "alice",
		Role:     models.RoleCustomer,
		IsActive: true,
	})
	snap.Notifications = append(snap.Notifications, models.Notification{
		ID:          uuid.New(),
		Type:        models.NotificationContact,
		Title:       "hello",
		RecipientID: &recipient,
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, fs.Save(ctx, snap))

	loaded, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, userID, loaded.Users[0].ID)
	require.Len(t, loaded.Notifications, 1)
	require.NotNil(t, loaded.Notifications[0].RecipientID)
	assert.Equal(t, recipient, *loaded.Notifications[0].RecipientID)
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	fs := NewFileStore(path)

	snap := NewSnapshot()
	snap.Users = append(snap.Users, models.User{ID: uuid.New(), Username: "one"})
	require.NoError(t, fs.Save(ctx, snap))

	snap.Users[0].Username = "two"
	require.NoError(t, fs.Save(ctx, snap))

	loaded, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, "two", loaded.Users[0].Username)
}

func TestMemStoreDetachesSavedState(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStore()

	snap := NewSnapshot()
	snap.Users = append(snap.Users, models.User{ID: uuid.New(), Username: "original"})
	require.NoError(t, ms.Save(ctx, snap))

	// Mutating the live snapshot must not leak into the saved copy.
	snap.Users[0].Username = "mutated"

	loaded, err := ms.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", loaded.Users[0].Username)
}
