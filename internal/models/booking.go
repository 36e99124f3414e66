package models

import "time"

// Booking claims a room for a guest over [CheckIn, CheckOut).
// While Status is reserved or checked-in the booking is the sole owner
// of that date range on its room.
type Booking struct {
	ID           string        `json:"id"`
	RoomID       string        `json:"room_id"`
	GuestID      string        `json:"guest_id"`
	CheckIn      time.Time     `json:"check_in"`
	CheckOut     time.Time     `json:"check_out"`
	Status       BookingStatus `json:"status"`
	CheckedInAt  time.Time     `json:"checked_in_at,omitempty"`
	CheckedOutAt time.Time     `json:"checked_out_at,omitempty"`
	CancelledAt  time.Time     `json:"cancelled_at,omitempty"`
	CancelReason string        `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Active reports whether the booking holds a live date-range claim.
func (b *Booking) Active() bool {
	return b.Status == StatusReserved || b.Status == StatusCheckedIn
}

// Nights is the billable stay length. Same-day stays are charged as one
// night.
func (b *Booking) Nights() int {
	nights := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Covers reports whether the date falls inside [CheckIn, CheckOut).
func (b *Booking) Covers(date time.Time) bool {
	return !date.Before(b.CheckIn) && date.Before(b.CheckOut)
}

// Overlaps reports whether [in, out) intersects the booking's own range.
func (b *Booking) Overlaps(in, out time.Time) bool {
	return in.Before(b.CheckOut) && b.CheckIn.Before(out)
}
