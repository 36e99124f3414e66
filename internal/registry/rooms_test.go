package registry

import (
	"testing"

	"hotelier/internal/models"
	"hotelier/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomRegistry(t *testing.T) *RoomRegistry {
	t.Helper()
	logger := zerolog.Nop()
	col, err := store.NewCollection[models.Room](t.TempDir(), "rooms")
	require.NoError(t, err)
	reg, err := NewRoomRegistry(col, &logger)
	require.NoError(t, err)
	return reg
}

func TestRoomUpsertGeneratesIdentity(t *testing.T) {
	reg := newRoomRegistry(t)

	room, err := reg.Upsert(models.Room{Number: "101", Category: "Single", Rate: 100})
	require.NoError(t, err)

	assert.Len(t, room.ID, models.IDLength)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.True(t, reg.Exists(room.ID))

	byNumber, err := reg.GetByNumber("101")
	require.NoError(t, err)
	assert.Equal(t, room.ID, byNumber.ID)
}

func TestRoomUpsertValidation(t *testing.T) {
	reg := newRoomRegistry(t)

	_, err := reg.Upsert(models.Room{Category: "Single", Rate: 100})
	assert.Error(t, err)

	_, err = reg.Upsert(models.Room{Number: "101", Rate: 0})
	assert.Error(t, err)

	_, err = reg.Upsert(models.Room{Number: "101", Rate: -5})
	assert.Error(t, err)

	_, err = reg.Upsert(models.Room{Number: "101", Rate: 100, Status: "broken"})
	assert.Error(t, err)
}

func TestRoomNumberMustBeUnique(t *testing.T) {
	reg := newRoomRegistry(t)

	room, err := reg.Upsert(models.Room{Number: "101", Category: "Single", Rate: 100})
	require.NoError(t, err)

	_, err = reg.Upsert(models.Room{Number: "101", Category: "Double", Rate: 150})
	assert.ErrorIs(t, err, ErrDuplicateNumber)

	// Re-upserting the same room keeps its own number.
	room.Rate = 120
	updated, err := reg.Upsert(*room)
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Rate)
}

func TestRoomSetStatus(t *testing.T) {
	reg := newRoomRegistry(t)

	room, err := reg.Upsert(models.Room{Number: "101", Category: "Single", Rate: 100})
	require.NoError(t, err)

	require.NoError(t, reg.SetStatus(room.ID, models.RoomOccupied))
	got, err := reg.Get(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, got.Status)

	assert.ErrorIs(t, reg.SetStatus("missing", models.RoomOccupied), ErrNotFound)
	assert.Error(t, reg.SetStatus(room.ID, "broken"))
}

func TestRoomListSortedAndFiltered(t *testing.T) {
	reg := newRoomRegistry(t)

	_, err := reg.Upsert(models.Room{Number: "202", Category: "Double", Rate: 150})
	require.NoError(t, err)
	_, err = reg.Upsert(models.Room{Number: "101", Category: "Single", Rate: 100})
	require.NoError(t, err)
	suite, err := reg.Upsert(models.Room{Number: "301", Category: "Suite", Rate: 250, Status: models.RoomMaintenance})
	require.NoError(t, err)

	all := reg.List(models.RoomFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "101", all[0].Number)
	assert.Equal(t, "202", all[1].Number)
	assert.Equal(t, "301", all[2].Number)

	maintenance := reg.List(models.RoomFilter{Status: models.RoomMaintenance})
	require.Len(t, maintenance, 1)
	assert.Equal(t, suite.ID, maintenance[0].ID)

	doubles := reg.List(models.RoomFilter{Category: "Double"})
	require.Len(t, doubles, 1)
	assert.Equal(t, "202", doubles[0].Number)
}

func TestRoomSeedKeepsExistingRecords(t *testing.T) {
	reg := newRoomRegistry(t)

	seed := []models.Room{
		{ID: "room-101", Number: "101", Category: "Single", Rate: 100},
		{ID: "room-102", Number: "102", Category: "Double", Rate: 150},
	}
	require.NoError(t, reg.Seed(seed))
	assert.Len(t, reg.List(models.RoomFilter{}), 2)

	// Runtime status must survive a re-seed on restart.
	require.NoError(t, reg.SetStatus("room-101", models.RoomOccupied))
	require.NoError(t, reg.Seed(seed))

	room, err := reg.Get("room-101")
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, room.Status)
}

func TestRoomRegistryReload(t *testing.T) {
	logger := zerolog.Nop()
	col, err := store.NewCollection[models.Room](t.TempDir(), "rooms")
	require.NoError(t, err)

	reg, err := NewRoomRegistry(col, &logger)
	require.NoError(t, err)
	room, err := reg.Upsert(models.Room{Number: "101", Category: "Single", Rate: 100})
	require.NoError(t, err)

	reloaded, err := NewRoomRegistry(col, &logger)
	require.NoError(t, err)
	got, err := reloaded.Get(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", got.Number)
}
