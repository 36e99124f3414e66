package store

import (
	"os"
	"path/filepath"
	"testing"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRoundTrip(t *testing.T) {
	col, err := NewCollection[models.Room](t.TempDir(), "rooms")
	require.NoError(t, err)

	records := map[string]models.Room{
		"room-101": {ID: "room-101", Number: "101", Category: "Single", Rate: 100, Status: models.RoomAvailable},
		"room-102": {ID: "room-102", Number: "102", Category: "Double", Rate: 150, Status: models.RoomOccupied},
	}
	require.NoError(t, col.Save(records))

	loaded, err := col.Load()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	col, err := NewCollection[models.Guest](t.TempDir(), "guests")
	require.NoError(t, err)

	records, err := col.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadCorruptDocumentFails(t *testing.T) {
	dir := t.TempDir()
	col, err := NewCollection[models.Guest](dir, "guests")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(col.Path(), []byte("{not json"), 0o644))

	_, err = col.Load()
	assert.Error(t, err)
}

func TestSaveReplacesDocument(t *testing.T) {
	col, err := NewCollection[models.Room](t.TempDir(), "rooms")
	require.NoError(t, err)

	require.NoError(t, col.Save(map[string]models.Room{
		"a": {ID: "a", Number: "101", Rate: 100},
	}))
	require.NoError(t, col.Save(map[string]models.Room{
		"b": {ID: "b", Number: "102", Rate: 150},
	}))

	loaded, err := col.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Contains(t, loaded, "b")

	// The temp file used for the atomic replace must be gone.
	_, err = os.Stat(col.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestNewCollectionCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	col, err := NewCollection[models.Bill](dir, "bills")
	require.NoError(t, err)

	require.NoError(t, col.Save(map[string]models.Bill{}))
	_, err = os.Stat(col.Path())
	assert.NoError(t, err)
}
