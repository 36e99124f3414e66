package models

// RoomStatus is the current occupancy state of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// Valid reports whether the status is one of the known room states.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusReserved   BookingStatus = "reserved"
	StatusCheckedIn  BookingStatus = "checked-in"
	StatusCheckedOut BookingStatus = "checked-out"
	StatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether the status is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusReserved, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave this state.
func (s BookingStatus) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// PaymentStatus is the settlement state of a bill.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// DateFormat is the calendar-day format used for all booking dates.
const DateFormat = "2006-01-02"

const (
	// IDLength is the length of generated entity identifiers.
	IDLength = 8

	// DefaultCancellationFeePercent charges the full stay when a
	// checked-in booking is cancelled.
	DefaultCancellationFeePercent = 100.0
)
