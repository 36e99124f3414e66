package models

import "time"

// BookingFilter narrows a ledger search. Zero-value fields match
// everything; From/To select bookings whose range overlaps [From, To).
type BookingFilter struct {
	ID            string
	GuestID       string
	RoomID        string
	RoomNumber    string
	Status        BookingStatus
	From          time.Time
	To            time.Time
	SortByCheckIn bool
}

// Matches reports whether the booking passes every set field except
// RoomNumber, which the caller resolves to a RoomID first.
func (f BookingFilter) Matches(b *Booking) bool {
	if f.ID != "" && b.ID != f.ID {
		return false
	}
	if f.GuestID != "" && b.GuestID != f.GuestID {
		return false
	}
	if f.RoomID != "" && b.RoomID != f.RoomID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		from := f.From
		to := f.To
		if to.IsZero() {
			to = b.CheckOut.AddDate(100, 0, 0)
		}
		if from.IsZero() {
			from = b.CheckIn.AddDate(-100, 0, 0)
		}
		if !b.Overlaps(from, to) {
			return false
		}
	}
	return true
}

// RoomFilter narrows a room listing.
type RoomFilter struct {
	Status   RoomStatus
	Category string
}

// Matches reports whether the room passes every set field.
func (f RoomFilter) Matches(r *Room) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	return true
}
