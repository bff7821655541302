package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayacoo/mfa-sms-backend/internal/models"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()

	require.False(t, store.HasFactor("user1"))
	_, err := store.GetFactor("user1")
	assert.ErrorIs(t, err, ErrFactorNotFound)

	err = store.CreateFactor(&models.Factor{
		UserID: "user1",
		Phone:  "+14155552671",
		Active: true,
	})
	require.NoError(t, err)

	require.True(t, store.HasFactor("user1"))
	factor, err := store.GetFactor("user1")
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", factor.Phone)
	assert.True(t, factor.Active)
	assert.NotZero(t, factor.UpdatedUnix(), "store must maintain the updated timestamp")
}

func TestMemoryStore_CreateTwiceFails(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateFactor(&models.Factor{UserID: "user1"}))
	assert.Error(t, store.CreateFactor(&models.Factor{UserID: "user1"}))
}

func TestMemoryStore_UpdateMissingFails(t *testing.T) {
	store := NewMemoryStore()

	err := store.UpdateFactor(&models.Factor{UserID: "ghost"})
	assert.ErrorIs(t, err, ErrFactorNotFound)
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateFactor(&models.Factor{UserID: "user1", Attempts: 1}))

	snapshot, err := store.GetFactor("user1")
	require.NoError(t, err)
	snapshot.Attempts = 99

	stored, err := store.GetFactor("user1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Attempts, "mutating a snapshot must not write through")
}

func TestPropertyManager_CreateVsUpdateDispatch(t *testing.T) {
	store := NewMemoryStore()
	pm := NewPropertyManager(store, "user1")

	require.False(t, pm.HasEntry())

	factor := pm.Properties()
	assert.Equal(t, "user1", factor.UserID)
	assert.False(t, factor.Active)

	factor.Phone = "+14155552671"
	factor.Active = true
	require.True(t, pm.Save(factor))
	require.True(t, pm.HasEntry())

	// Second save on the same user must update, not create
	factor = pm.Properties()
	factor.Attempts = 2
	require.True(t, pm.Save(factor))

	stored := pm.Properties()
	assert.Equal(t, "+14155552671", stored.Phone)
	assert.Equal(t, 2, stored.Attempts)
}
