package storage

import (
	"context"
	"testing"
	"time"

	"ride-compare-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	created, err := store.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	second, err := store.CreateUser(ctx, &models.User{Username: "bob", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	found, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	byName, err := store.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, second.ID, byName.ID)

	missing, err := store.GetUser(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStorageDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	_, err := store.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, &models.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// the failed create must not consume an id or add a row
	next, err := store.CreateUser(ctx, &models.User{Username: "bob", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}

func TestMemoryStorageSavedPlaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	alice, err := store.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, &models.User{Username: "bob", Password: "hash"})
	require.NoError(t, err)

	home, err := store.CreateSavedPlace(ctx, &models.SavedPlace{
		UserID: alice.ID, Name: "Home", Address: "1 Main St", Latitude: "12.97", Longitude: "77.59",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, home.ID)

	_, err = store.CreateSavedPlace(ctx, &models.SavedPlace{
		UserID: bob.ID, Name: "Work", Address: "2 Side St", Latitude: "12.98", Longitude: "77.60",
	})
	require.NoError(t, err)

	places, err := store.GetSavedPlaces(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Home", places[0].Name)
	assert.Equal(t, alice.ID, places[0].UserID)
}

func TestMemoryStorageDeleteSavedPlaceIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	alice, err := store.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	place, err := store.CreateSavedPlace(ctx, &models.SavedPlace{
		UserID: alice.ID, Name: "Home", Address: "1 Main St", Latitude: "12.97", Longitude: "77.59",
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteSavedPlace(ctx, place.ID))
	require.NoError(t, store.DeleteSavedPlace(ctx, place.ID))
	require.NoError(t, store.DeleteSavedPlace(ctx, 999))

	found, err := store.GetSavedPlace(ctx, place.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStorageRideHistoryOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	alice, err := store.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)

	for _, service := range []string{"uber", "ola", "rapido"} {
		_, err := store.CreateRideHistory(ctx, &models.RideHistory{
			UserID: alice.ID, PickupLocation: "A", DropoffLocation: "B",
			PickupLatitude: "1", PickupLongitude: "2", DropoffLatitude: "3", DropoffLongitude: "4",
			Service: service, RideType: "economy", Fare: "100", Distance: "5", Duration: "10",
			Status: models.RideStatusBooked,
		})
		require.NoError(t, err)
	}

	rides, err := store.GetRideHistory(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, rides, 3)

	for i := 1; i < len(rides); i++ {
		assert.False(t, rides[i-1].Timestamp.Before(rides[i].Timestamp),
			"ride history must be sorted newest first")
	}
	// same-instant bookings fall back to id order, newest id first
	assert.Equal(t, "rapido", rides[0].Service)
	assert.Equal(t, "uber", rides[2].Service)
}

func TestMemoryStorageRideTimestampIsServerAssigned(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	alice, err := store.CreateUser(ctx, &models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)

	before := time.Now().UTC()
	stale := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	ride, err := store.CreateRideHistory(ctx, &models.RideHistory{
		UserID: alice.ID, PickupLocation: "A", DropoffLocation: "B",
		PickupLatitude: "1", PickupLongitude: "2", DropoffLatitude: "3", DropoffLongitude: "4",
		Service: "uber", RideType: "economy", Fare: "100", Distance: "5", Duration: "10",
		Status: models.RideStatusBooked, Timestamp: stale,
	})
	require.NoError(t, err)

	assert.False(t, ride.Timestamp.Before(before), "timestamp must be assigned at creation")
	assert.NotEqual(t, stale, ride.Timestamp)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemoryStorage().Sessions()

	live := &models.Session{
		ID: "live", UserID: 1,
		ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}
	expired := &models.Session{
		ID: "expired", UserID: 1,
		ExpiresAt: time.Now().Add(-time.Minute), CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, sessions.Create(ctx, live))
	require.NoError(t, sessions.Create(ctx, expired))

	found, err := sessions.Get(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, found.UserID)

	gone, err := sessions.Get(ctx, "expired")
	require.NoError(t, err)
	assert.Nil(t, gone, "expired sessions must not resolve")

	require.NoError(t, sessions.DeleteExpired(ctx))
	still, err := sessions.Get(ctx, "live")
	require.NoError(t, err)
	assert.NotNil(t, still, "cleanup must keep live sessions")

	require.NoError(t, sessions.Delete(ctx, "live"))
	deleted, err := sessions.Get(ctx, "live")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}
