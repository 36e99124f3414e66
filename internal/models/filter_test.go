package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingFilterMatches(t *testing.T) {
	b := Booking{
		ID:       "bk1",
		RoomID:   "room-101",
		GuestID:  "guest-1",
		Status:   StatusReserved,
		CheckIn:  day(2024, 1, 10),
		CheckOut: day(2024, 1, 15),
	}

	assert.True(t, BookingFilter{}.Matches(&b))
	assert.True(t, BookingFilter{ID: "bk1", GuestID: "guest-1", RoomID: "room-101", Status: StatusReserved}.Matches(&b))

	assert.False(t, BookingFilter{ID: "other"}.Matches(&b))
	assert.False(t, BookingFilter{GuestID: "guest-2"}.Matches(&b))
	assert.False(t, BookingFilter{RoomID: "room-102"}.Matches(&b))
	assert.False(t, BookingFilter{Status: StatusCancelled}.Matches(&b))
}

func TestBookingFilterPeriod(t *testing.T) {
	b := Booking{CheckIn: day(2024, 1, 10), CheckOut: day(2024, 1, 15)}

	assert.True(t, BookingFilter{From: day(2024, 1, 12), To: day(2024, 1, 13)}.Matches(&b))
	assert.False(t, BookingFilter{From: day(2024, 1, 15), To: day(2024, 1, 20)}.Matches(&b))

	// Open-ended bounds.
	assert.True(t, BookingFilter{From: day(2024, 1, 14)}.Matches(&b))
	assert.False(t, BookingFilter{From: day(2024, 1, 15)}.Matches(&b))
	assert.True(t, BookingFilter{To: day(2024, 1, 11)}.Matches(&b))
	assert.False(t, BookingFilter{To: day(2024, 1, 10)}.Matches(&b))
}

func TestRoomFilterMatches(t *testing.T) {
	r := Room{Status: RoomAvailable, Category: "Single"}

	assert.True(t, RoomFilter{}.Matches(&r))
	assert.True(t, RoomFilter{Status: RoomAvailable, Category: "Single"}.Matches(&r))
	assert.False(t, RoomFilter{Status: RoomOccupied}.Matches(&r))
	assert.False(t, RoomFilter{Category: "Suite"}.Matches(&r))
}
