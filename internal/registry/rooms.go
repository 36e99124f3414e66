package registry

import (
	"errors"
	"fmt"
	"sort"

	"hotelier/internal/models"
	"hotelier/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when a referenced identifier is absent.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateNumber is returned when a room number is already taken
	// by another room.
	ErrDuplicateNumber = errors.New("room number already exists")
)

// RoomRegistry owns room identity and occupancy status. Records are
// held in memory and written back to the store after every mutation.
type RoomRegistry struct {
	store  *store.Collection[models.Room]
	rooms  map[string]models.Room
	logger *zerolog.Logger
}

func NewRoomRegistry(col *store.Collection[models.Room], logger *zerolog.Logger) (*RoomRegistry, error) {
	rooms, err := col.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	return &RoomRegistry{store: col, rooms: rooms, logger: logger}, nil
}

func (r *RoomRegistry) Get(id string) (*models.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", id, ErrNotFound)
	}
	return &room, nil
}

func (r *RoomRegistry) GetByNumber(number string) (*models.Room, error) {
	for _, room := range r.rooms {
		if room.Number == number {
			return &room, nil
		}
	}
	return nil, fmt.Errorf("room number %s: %w", number, ErrNotFound)
}

func (r *RoomRegistry) Exists(id string) bool {
	_, ok := r.rooms[id]
	return ok
}

// Upsert inserts or replaces a room. An empty ID gets a generated one;
// an empty status defaults to available. The human-facing number must
// stay unique across the registry.
func (r *RoomRegistry) Upsert(room models.Room) (*models.Room, error) {
	if room.Number == "" {
		return nil, errors.New("room number is required")
	}
	if room.Rate <= 0 {
		return nil, fmt.Errorf("room %s has non-positive rate %v", room.Number, room.Rate)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !room.Status.Valid() {
		return nil, fmt.Errorf("unknown room status %q", room.Status)
	}
	if room.ID == "" {
		room.ID = newID(func(id string) bool { return r.Exists(id) })
	}

	for _, existing := range r.rooms {
		if existing.Number == room.Number && existing.ID != room.ID {
			return nil, fmt.Errorf("number %s: %w", room.Number, ErrDuplicateNumber)
		}
	}

	r.rooms[room.ID] = room
	if err := r.store.Save(r.rooms); err != nil {
		return nil, err
	}

	r.logger.Debug().Str("room_id", room.ID).Str("number", room.Number).Msg("room upserted")
	return &room, nil
}

// SetStatus changes a room's occupancy status and persists it.
func (r *RoomRegistry) SetStatus(id string, status models.RoomStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown room status %q", status)
	}
	room, ok := r.rooms[id]
	if !ok {
		return fmt.Errorf("room %s: %w", id, ErrNotFound)
	}
	if room.Status == status {
		return nil
	}
	room.Status = status
	r.rooms[id] = room
	return r.store.Save(r.rooms)
}

// List returns matching rooms sorted by room number.
func (r *RoomRegistry) List(filter models.RoomFilter) []models.Room {
	var out []models.Room
	for _, room := range r.rooms {
		if filter.Matches(&room) {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Seed upserts configured rooms that are not yet present. Existing
// records win so that runtime status changes survive restarts.
func (r *RoomRegistry) Seed(rooms []models.Room) error {
	for _, room := range rooms {
		if r.Exists(room.ID) {
			continue
		}
		if _, err := r.Upsert(room); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.Number, err)
		}
	}
	return nil
}

// newID generates a short unique identifier, retrying on the unlikely
// prefix collision.
func newID(taken func(string) bool) string {
	for {
		id := uuid.NewString()[:models.IDLength]
		if !taken(id) {
			return id
		}
	}
}
