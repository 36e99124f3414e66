package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotelier/internal/models"
	"hotelier/internal/store"

	"github.com/rs/zerolog"
)

// GuestRegistry owns guest identity and contact profiles.
type GuestRegistry struct {
	store  *store.Collection[models.Guest]
	guests map[string]models.Guest
	now    func() time.Time
	logger *zerolog.Logger
}

func NewGuestRegistry(col *store.Collection[models.Guest], logger *zerolog.Logger) (*GuestRegistry, error) {
	guests, err := col.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	return &GuestRegistry{store: col, guests: guests, now: time.Now, logger: logger}, nil
}

func (r *GuestRegistry) Get(id string) (*models.Guest, error) {
	guest, ok := r.guests[id]
	if !ok {
		return nil, fmt.Errorf("guest %s: %w", id, ErrNotFound)
	}
	return &guest, nil
}

func (r *GuestRegistry) Exists(id string) bool {
	_, ok := r.guests[id]
	return ok
}

// Upsert registers a new guest or updates the contact profile of an
// existing one. An empty ID means registration.
func (r *GuestRegistry) Upsert(guest models.Guest) (*models.Guest, error) {
	if strings.TrimSpace(guest.Name) == "" {
		return nil, errors.New("guest name is required")
	}

	now := r.now()
	if guest.ID == "" {
		guest.ID = newID(func(id string) bool { return r.Exists(id) })
		guest.CreatedAt = now
	} else if existing, ok := r.guests[guest.ID]; ok {
		guest.CreatedAt = existing.CreatedAt
	} else {
		guest.CreatedAt = now
	}
	guest.UpdatedAt = now

	r.guests[guest.ID] = guest
	if err := r.store.Save(r.guests); err != nil {
		return nil, err
	}

	r.logger.Debug().Str("guest_id", guest.ID).Msg("guest upserted")
	return &guest, nil
}

// List returns all guests ordered by registration time, then ID.
func (r *GuestRegistry) List() []models.Guest {
	out := make([]models.Guest, 0, len(r.guests))
	for _, guest := range r.guests {
		out = append(out, guest)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Search matches guests by exact ID or case-insensitive name fragment.
func (r *GuestRegistry) Search(term string) []models.Guest {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}

	var out []models.Guest
	for _, guest := range r.List() {
		if guest.ID == term || strings.Contains(strings.ToLower(guest.Name), needle) {
			out = append(out, guest)
		}
	}
	return out
}
