package domain

import (
	"time"

	"hotelier/internal/models"
)

// RoomDirectory is the room registry contract the ledger and the
// reporting layer depend on. The ledger never reaches into the
// underlying store directly.
type RoomDirectory interface {
	Get(id string) (*models.Room, error)
	GetByNumber(number string) (*models.Room, error)
	Exists(id string) bool
	Upsert(room models.Room) (*models.Room, error)
	SetStatus(id string, status models.RoomStatus) error
	List(filter models.RoomFilter) []models.Room
}

// GuestDirectory is the guest registry contract.
type GuestDirectory interface {
	Get(id string) (*models.Guest, error)
	Exists(id string) bool
	Upsert(guest models.Guest) (*models.Guest, error)
	List() []models.Guest
	Search(term string) []models.Guest
}

// BookingLedger is the booking lifecycle contract.
type BookingLedger interface {
	Create(roomID, guestID string, checkIn, checkOut time.Time) (*models.Booking, error)
	CheckIn(bookingID string, date time.Time) (*models.Booking, error)
	CheckOut(bookingID string, date time.Time) (*models.Booking, error)
	Cancel(bookingID, reason string) (*models.Booking, error)
	UpdateDates(bookingID string, checkIn, checkOut time.Time) (*models.Booking, error)
	Find(filter models.BookingFilter) []models.Booking
	Get(id string) (*models.Booking, error)
}

// BillingService issues and settles bills for finalized bookings.
type BillingService interface {
	Generate(bookingID string) (*models.Bill, error)
	Pay(billID string, amount float64) (*models.Bill, error)
	Get(billID string) (*models.Bill, error)
	GetByBooking(bookingID string) (*models.Bill, error)
	List() []models.Bill
}

// EventPublisher emits domain events; a nil publisher is a no-op.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
