package billing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrBookingNotFinalized is returned when billing is requested for a
	// booking that has not reached checked-out or cancelled.
	ErrBookingNotFinalized = errors.New("booking is not finalized yet")

	// ErrBillNotFound is returned when a bill identifier is unknown.
	ErrBillNotFound = errors.New("bill not found")

	// ErrBillAlreadyPaid is returned when paying a settled bill.
	ErrBillAlreadyPaid = errors.New("bill is already paid")

	// ErrInsufficientPayment is returned when the tendered amount does
	// not cover the bill.
	ErrInsufficientPayment = errors.New("payment amount is less than the bill amount")
)

// Policy holds the billing policy values read from config.
type Policy struct {
	// CancellationFeePercent of the full stay, charged only when a
	// checked-in booking is cancelled.
	CancellationFeePercent float64
}

// Service derives bills from finalized bookings and records payments.
// A bill's amount is fixed at generation time; only the payment fields
// change afterwards.
type Service struct {
	store    *store.Collection[models.Bill]
	ledger   domain.BookingLedger
	rooms    domain.RoomDirectory
	eventBus domain.EventPublisher
	policy   Policy
	bills    map[string]models.Bill
	now      func() time.Time
	logger   *zerolog.Logger
}

func NewService(col *store.Collection[models.Bill], ledger domain.BookingLedger, rooms domain.RoomDirectory, eventBus domain.EventPublisher, policy Policy, logger *zerolog.Logger) (*Service, error) {
	bills, err := col.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	return &Service{
		store:    col,
		ledger:   ledger,
		rooms:    rooms,
		eventBus: eventBus,
		policy:   policy,
		bills:    bills,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Generate issues the bill for a finalized booking. A booking is billed
// at most once: a second call returns the existing bill unchanged.
func (s *Service) Generate(bookingID string) (*models.Bill, error) {
	booking, err := s.ledger.Get(bookingID)
	if err != nil {
		metrics.IncOpError("generate_bill")
		return nil, err
	}
	if booking.Status != models.StatusCheckedOut && booking.Status != models.StatusCancelled {
		metrics.IncOpError("generate_bill")
		return nil, fmt.Errorf("%w: booking %s has status %s", ErrBookingNotFinalized, bookingID, booking.Status)
	}

	if existing, err := s.GetByBooking(bookingID); err == nil {
		return existing, nil
	}

	room, err := s.rooms.Get(booking.RoomID)
	if err != nil {
		metrics.IncOpError("generate_bill")
		return nil, err
	}

	bill := models.Bill{
		ID:            s.newBillID(),
		BookingID:     bookingID,
		Amount:        s.amountFor(booking, room.Rate),
		PaymentStatus: models.PaymentUnpaid,
		CreatedAt:     s.now(),
	}

	s.bills[bill.ID] = bill
	if err := s.store.Save(s.bills); err != nil {
		metrics.IncOpError("generate_bill")
		return nil, fmt.Errorf("failed to save bills: %w", err)
	}

	metrics.IncOp("generate_bill")
	s.logger.Info().
		Str("bill_id", bill.ID).
		Str("booking_id", bookingID).
		Float64("amount", bill.Amount).
		Msg("bill generated")
	s.publish(events.EventBillGenerated, &bill)
	return &bill, nil
}

// amountFor prices the stay. Bookings cancelled before check-in owe
// nothing; bookings cancelled after check-in owe the cancellation fee
// share of the full stay.
func (s *Service) amountFor(booking *models.Booking, rate float64) float64 {
	full := float64(booking.Nights()) * rate
	if booking.Status == models.StatusCheckedOut {
		return full
	}
	if booking.CheckedInAt.IsZero() {
		return 0
	}
	return roundCents(full * s.policy.CancellationFeePercent / 100)
}

// Pay settles a bill. The tendered amount must cover the bill in full.
func (s *Service) Pay(billID string, amount float64) (*models.Bill, error) {
	bill, ok := s.bills[billID]
	if !ok {
		metrics.IncOpError("pay_bill")
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	if bill.PaymentStatus == models.PaymentPaid {
		metrics.IncOpError("pay_bill")
		return nil, fmt.Errorf("%w: %s", ErrBillAlreadyPaid, billID)
	}
	if amount < bill.Amount {
		metrics.IncOpError("pay_bill")
		return nil, fmt.Errorf("%w: tendered %.2f, owed %.2f", ErrInsufficientPayment, amount, bill.Amount)
	}

	bill.PaymentStatus = models.PaymentPaid
	bill.PaymentDate = s.now()
	s.bills[billID] = bill
	if err := s.store.Save(s.bills); err != nil {
		metrics.IncOpError("pay_bill")
		return nil, fmt.Errorf("failed to save bills: %w", err)
	}

	metrics.IncOp("pay_bill")
	s.logger.Info().Str("bill_id", billID).Float64("amount", bill.Amount).Msg("bill paid")
	s.publish(events.EventBillPaid, &bill)
	return &bill, nil
}

// Get returns a bill by identifier.
func (s *Service) Get(billID string) (*models.Bill, error) {
	bill, ok := s.bills[billID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	return &bill, nil
}

// GetByBooking returns the bill issued for a booking, if any.
func (s *Service) GetByBooking(bookingID string) (*models.Bill, error) {
	for _, bill := range s.bills {
		if bill.BookingID == bookingID {
			b := bill
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: no bill for booking %s", ErrBillNotFound, bookingID)
}

// List returns all bills ordered by creation time, then ID.
func (s *Service) List() []models.Bill {
	out := make([]models.Bill, 0, len(s.bills))
	for _, bill := range s.bills {
		out = append(out, bill)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Service) publish(eventType string, bill *models.Bill) {
	if s.eventBus == nil {
		return
	}

	payload := events.BillEventPayload{
		BillID:        bill.ID,
		BookingID:     bill.BookingID,
		Amount:        bill.Amount,
		PaymentStatus: string(bill.PaymentStatus),
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("bill_id", bill.ID).Msg("publish event error")
	}
}

func (s *Service) newBillID() string {
	for {
		id := uuid.NewString()[:models.IDLength]
		if _, taken := s.bills[id]; !taken {
			return id
		}
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
