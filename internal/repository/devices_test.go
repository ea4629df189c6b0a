package repository

import (
	"context"
	"testing"
	"time"

	"maintcheck/internal/domain"
	"maintcheck/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevice(id, name string) *domain.Device {
	return &domain.Device{
		ID:               id,
		Name:             name,
		PlannedFrequency: 4,
		Status:           domain.DeviceActive,
		CreatedAt:        time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestDevicesRepo_SaveGetDelete(t *testing.T) {
	repo := NewDevicesRepository(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testDevice("d1", "Pump A")))

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Pump A", got.Name)

	require.NoError(t, repo.Delete(ctx, "d1"))
	_, err = repo.Get(ctx, "d1")
	assert.True(t, domain.IsNotFound(err))
}

func TestDevicesRepo_GetManyOmitsAbsent(t *testing.T) {
	repo := NewDevicesRepository(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testDevice("d1", "Pump A")))
	require.NoError(t, repo.Save(ctx, testDevice("d2", "Pump B")))

	devices, err := repo.GetMany(ctx, []string{"d1", "ghost", "d2"})
	require.NoError(t, err)
	require.Len(t, devices, 2)
}

func TestDevicesRepo_List(t *testing.T) {
	kv := store.NewMemoryStore()
	repo := NewDevicesRepository(kv)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testDevice("d1", "Pump A")))
	require.NoError(t, repo.Save(ctx, testDevice("d2", "Pump B")))
	// other prefixes must not leak into the device list
	require.NoError(t, kv.Set(ctx, "check:2025:10:d1", "{}"))

	devices, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 2)
}
