package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/registry"
	"hotelier/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ledger owns the booking lifecycle. It validates every mutation against
// room and guest state, keeps the no-overlap invariant for active
// bookings, and reconciles room occupancy on each transition.
type Ledger struct {
	store    *store.Collection[models.Booking]
	rooms    domain.RoomDirectory
	guests   domain.GuestDirectory
	eventBus domain.EventPublisher
	bookings map[string]models.Booking
	order    []string
	now      func() time.Time
	logger   *zerolog.Logger
}

func New(col *store.Collection[models.Booking], rooms domain.RoomDirectory, guests domain.GuestDirectory, eventBus domain.EventPublisher, logger *zerolog.Logger) (*Ledger, error) {
	bookings, err := col.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	order := make([]string, 0, len(bookings))
	for id := range bookings {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := bookings[order[i]], bookings[order[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return &Ledger{
		store:    col,
		rooms:    rooms,
		guests:   guests,
		eventBus: eventBus,
		bookings: bookings,
		order:    order,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Create validates the references, the date range and the no-overlap
// invariant, then records a reserved booking.
func (l *Ledger) Create(roomID, guestID string, checkIn, checkOut time.Time) (*models.Booking, error) {
	checkIn = dateOnly(checkIn)
	checkOut = dateOnly(checkOut)

	if !l.rooms.Exists(roomID) {
		metrics.IncOpError("create_booking")
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	if !l.guests.Exists(guestID) {
		metrics.IncOpError("create_booking")
		return nil, fmt.Errorf("%w: %s", ErrGuestNotFound, guestID)
	}
	if !checkOut.After(checkIn) {
		metrics.IncOpError("create_booking")
		return nil, ErrInvalidDateRange
	}
	if conflict := l.findConflict(roomID, checkIn, checkOut, ""); conflict != nil {
		metrics.IncOpError("create_booking")
		return nil, conflict
	}

	now := l.now()
	booking := models.Booking{
		ID:        l.newBookingID(),
		RoomID:    roomID,
		GuestID:   guestID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    models.StatusReserved,
		CreatedAt: now,
		UpdatedAt: now,
	}

	l.bookings[booking.ID] = booking
	l.order = append(l.order, booking.ID)
	if err := l.persist(); err != nil {
		metrics.IncOpError("create_booking")
		return nil, err
	}

	metrics.IncOp("create_booking")
	l.logger.Info().
		Str("booking_id", booking.ID).
		Str("room_id", roomID).
		Str("guest_id", guestID).
		Str("check_in", checkIn.Format(models.DateFormat)).
		Str("check_out", checkOut.Format(models.DateFormat)).
		Msg("booking created")
	l.publish(events.EventBookingCreated, &booking, "")
	return &booking, nil
}

// CheckIn moves a reserved booking to checked-in and marks the room
// occupied.
func (l *Ledger) CheckIn(bookingID string, date time.Time) (*models.Booking, error) {
	booking, err := l.get(bookingID)
	if err != nil {
		metrics.IncOpError("check_in")
		return nil, err
	}
	if booking.Status != models.StatusReserved {
		metrics.IncOpError("check_in")
		return nil, &TransitionError{BookingID: bookingID, From: booking.Status, Event: "check in"}
	}

	booking.Status = models.StatusCheckedIn
	booking.CheckedInAt = dateOnly(date)
	booking.UpdatedAt = l.now()
	l.bookings[bookingID] = *booking
	if err := l.persist(); err != nil {
		metrics.IncOpError("check_in")
		return nil, err
	}

	if err := l.rooms.SetStatus(booking.RoomID, models.RoomOccupied); err != nil {
		l.logger.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to mark room occupied")
	}

	metrics.IncOp("check_in")
	l.logger.Info().Str("booking_id", bookingID).Str("room_id", booking.RoomID).Msg("guest checked in")
	l.publish(events.EventBookingCheckedIn, booking, "")
	return booking, nil
}

// CheckOut moves a checked-in booking to checked-out and recomputes the
// room's occupancy from remaining ledger state rather than assuming the
// room is now free.
func (l *Ledger) CheckOut(bookingID string, date time.Time) (*models.Booking, error) {
	booking, err := l.get(bookingID)
	if err != nil {
		metrics.IncOpError("check_out")
		return nil, err
	}
	if booking.Status != models.StatusCheckedIn {
		metrics.IncOpError("check_out")
		return nil, &TransitionError{BookingID: bookingID, From: booking.Status, Event: "check out"}
	}

	booking.Status = models.StatusCheckedOut
	booking.CheckedOutAt = dateOnly(date)
	booking.UpdatedAt = l.now()
	l.bookings[bookingID] = *booking
	if err := l.persist(); err != nil {
		metrics.IncOpError("check_out")
		return nil, err
	}

	l.syncRoomStatus(booking.RoomID)

	metrics.IncOp("check_out")
	l.logger.Info().
		Str("booking_id", bookingID).
		Str("room_id", booking.RoomID).
		Int("nights", booking.Nights()).
		Msg("guest checked out")
	l.publish(events.EventBookingCheckedOut, booking, "")
	return booking, nil
}

// Cancel moves an active booking to cancelled, freeing its date range
// immediately.
func (l *Ledger) Cancel(bookingID, reason string) (*models.Booking, error) {
	booking, err := l.get(bookingID)
	if err != nil {
		metrics.IncOpError("cancel_booking")
		return nil, err
	}
	if !booking.Active() {
		metrics.IncOpError("cancel_booking")
		return nil, &TransitionError{BookingID: bookingID, From: booking.Status, Event: "cancel"}
	}

	wasCheckedIn := booking.Status == models.StatusCheckedIn
	booking.Status = models.StatusCancelled
	booking.CancelledAt = l.now()
	booking.CancelReason = reason
	booking.UpdatedAt = booking.CancelledAt
	l.bookings[bookingID] = *booking
	if err := l.persist(); err != nil {
		metrics.IncOpError("cancel_booking")
		return nil, err
	}

	if wasCheckedIn {
		l.syncRoomStatus(booking.RoomID)
	}

	metrics.IncOp("cancel_booking")
	l.logger.Info().Str("booking_id", bookingID).Str("reason", reason).Msg("booking cancelled")
	l.publish(events.EventBookingCancelled, booking, reason)
	return booking, nil
}

// UpdateDates moves a reserved booking to a new date range after
// re-running the overlap check against every other active booking.
// Nothing is mutated when the new range conflicts.
func (l *Ledger) UpdateDates(bookingID string, checkIn, checkOut time.Time) (*models.Booking, error) {
	checkIn = dateOnly(checkIn)
	checkOut = dateOnly(checkOut)

	booking, err := l.get(bookingID)
	if err != nil {
		metrics.IncOpError("update_dates")
		return nil, err
	}
	if booking.Status != models.StatusReserved {
		metrics.IncOpError("update_dates")
		return nil, &TransitionError{BookingID: bookingID, From: booking.Status, Event: "reschedule"}
	}
	if !checkOut.After(checkIn) {
		metrics.IncOpError("update_dates")
		return nil, ErrInvalidDateRange
	}
	if conflict := l.findConflict(booking.RoomID, checkIn, checkOut, bookingID); conflict != nil {
		metrics.IncOpError("update_dates")
		return nil, conflict
	}

	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	booking.UpdatedAt = l.now()
	l.bookings[bookingID] = *booking
	if err := l.persist(); err != nil {
		metrics.IncOpError("update_dates")
		return nil, err
	}

	metrics.IncOp("update_dates")
	l.logger.Info().
		Str("booking_id", bookingID).
		Str("check_in", checkIn.Format(models.DateFormat)).
		Str("check_out", checkOut.Format(models.DateFormat)).
		Msg("booking rescheduled")
	l.publish(events.EventBookingRescheduled, booking, "")
	return booking, nil
}

// Get returns a booking by identifier.
func (l *Ledger) Get(id string) (*models.Booking, error) {
	return l.get(id)
}

// Find returns bookings matching the filter in stable insertion order,
// or sorted by check-in date when the filter requests it.
func (l *Ledger) Find(filter models.BookingFilter) []models.Booking {
	if filter.RoomNumber != "" {
		room, err := l.rooms.GetByNumber(filter.RoomNumber)
		if err != nil {
			return nil
		}
		filter.RoomID = room.ID
	}
	filter.From = dateOnly(filter.From)
	filter.To = dateOnly(filter.To)

	var out []models.Booking
	for _, id := range l.order {
		booking := l.bookings[id]
		if filter.Matches(&booking) {
			out = append(out, booking)
		}
	}

	if filter.SortByCheckIn {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	}
	return out
}

func (l *Ledger) get(id string) (*models.Booking, error) {
	booking, ok := l.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	return &booking, nil
}

// findConflict returns a ConflictError when [checkIn, checkOut) overlaps
// an active booking on the room. Cancelled and checked-out bookings hold
// no claim. excludeID skips the booking being rescheduled.
func (l *Ledger) findConflict(roomID string, checkIn, checkOut time.Time, excludeID string) error {
	for _, id := range l.order {
		booking := l.bookings[id]
		if booking.RoomID != roomID || booking.ID == excludeID || !booking.Active() {
			continue
		}
		if booking.Overlaps(checkIn, checkOut) {
			return &ConflictError{RoomID: roomID, BookingID: booking.ID}
		}
	}
	return nil
}

// syncRoomStatus recomputes occupancy from ledger state: a room is
// occupied iff some checked-in booking covers today. Rooms under
// maintenance are left alone.
func (l *Ledger) syncRoomStatus(roomID string) {
	room, err := l.rooms.Get(roomID)
	if err != nil {
		l.logger.Error().Err(err).Str("room_id", roomID).Msg("failed to load room for status sync")
		return
	}
	if room.Status == models.RoomMaintenance {
		return
	}

	today := dateOnly(l.now())
	status := models.RoomAvailable
	for _, id := range l.order {
		booking := l.bookings[id]
		if booking.RoomID == roomID && booking.Status == models.StatusCheckedIn && booking.Covers(today) {
			status = models.RoomOccupied
			break
		}
	}

	if err := l.rooms.SetStatus(roomID, status); err != nil {
		l.logger.Error().Err(err).Str("room_id", roomID).Msg("failed to sync room status")
	}
}

func (l *Ledger) persist() error {
	if err := l.store.Save(l.bookings); err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}

func (l *Ledger) publish(eventType string, booking *models.Booking, reason string) {
	if l.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		GuestID:   booking.GuestID,
		Status:    string(booking.Status),
		CheckIn:   booking.CheckIn,
		CheckOut:  booking.CheckOut,
		Reason:    reason,
	}

	if err := l.eventBus.PublishJSON(eventType, payload); err != nil {
		l.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func (l *Ledger) newBookingID() string {
	for {
		id := uuid.NewString()[:models.IDLength]
		if _, taken := l.bookings[id]; !taken {
			return id
		}
	}
}

// dateOnly truncates a timestamp to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsNotFound reports whether the error names a missing room, guest or
// booking, regardless of which registry raised it.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrGuestNotFound) ||
		errors.Is(err, registry.ErrNotFound)
}
