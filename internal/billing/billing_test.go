package billing

import (
	"testing"
	"time"

	"hotelier/internal/ledger"
	"hotelier/internal/models"
	"hotelier/internal/registry"
	"hotelier/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	ledger  *ledger.Ledger
	service *Service
	room    *models.Room
	guest   *models.Guest
}

func newTestEnv(t *testing.T, feePercent float64) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	dir := t.TempDir()

	roomCol, err := store.NewCollection[models.Room](dir, "rooms")
	require.NoError(t, err)
	guestCol, err := store.NewCollection[models.Guest](dir, "guests")
	require.NoError(t, err)
	bookingCol, err := store.NewCollection[models.Booking](dir, "bookings")
	require.NoError(t, err)
	billCol, err := store.NewCollection[models.Bill](dir, "bills")
	require.NoError(t, err)

	rooms, err := registry.NewRoomRegistry(roomCol, &logger)
	require.NoError(t, err)
	room, err := rooms.Upsert(models.Room{Number: "101", Category: "Single", Rate: 100})
	require.NoError(t, err)

	guests, err := registry.NewGuestRegistry(guestCol, &logger)
	require.NoError(t, err)
	guest, err := guests.Upsert(models.Guest{Name: "Alice Smith"})
	require.NoError(t, err)

	bookingLedger, err := ledger.New(bookingCol, rooms, guests, nil, &logger)
	require.NoError(t, err)

	service, err := NewService(billCol, bookingLedger, rooms, nil, Policy{CancellationFeePercent: feePercent}, &logger)
	require.NoError(t, err)

	return &testEnv{ledger: bookingLedger, service: service, room: room, guest: guest}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (env *testEnv) checkedOutBooking(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := env.ledger.Create(env.room.ID, env.guest.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	_, err = env.ledger.CheckIn(booking.ID, day(2024, 1, 1))
	require.NoError(t, err)
	booking, err = env.ledger.CheckOut(booking.ID, day(2024, 1, 3))
	require.NoError(t, err)
	return booking
}

func TestGenerateRequiresFinalizedBooking(t *testing.T) {
	env := newTestEnv(t, 100)

	booking, err := env.ledger.Create(env.room.ID, env.guest.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	_, err = env.service.Generate(booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFinalized)

	_, err = env.ledger.CheckIn(booking.ID, day(2024, 1, 1))
	require.NoError(t, err)
	_, err = env.service.Generate(booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFinalized)

	_, err = env.service.Generate("missing")
	assert.ErrorIs(t, err, ledger.ErrBookingNotFound)
}

func TestGenerateChargesNightsTimesRate(t *testing.T) {
	env := newTestEnv(t, 100)
	booking := env.checkedOutBooking(t)

	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, bill.BookingID)
	assert.Equal(t, 200.0, bill.Amount)
	assert.Equal(t, models.PaymentUnpaid, bill.PaymentStatus)
	assert.True(t, bill.PaymentDate.IsZero())
}

func TestGenerateIsIdempotent(t *testing.T) {
	env := newTestEnv(t, 100)
	booking := env.checkedOutBooking(t)

	first, err := env.service.Generate(booking.ID)
	require.NoError(t, err)
	second, err := env.service.Generate(booking.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Amount, second.Amount)
	assert.Len(t, env.service.List(), 1)
}

func TestCancelledBeforeCheckInOwesNothing(t *testing.T) {
	env := newTestEnv(t, 100)

	booking, err := env.ledger.Create(env.room.ID, env.guest.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	_, err = env.ledger.Cancel(booking.ID, "changed plans")
	require.NoError(t, err)

	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, bill.Amount)
}

func TestCancelledAfterCheckInOwesFeeShare(t *testing.T) {
	env := newTestEnv(t, 50)

	booking, err := env.ledger.Create(env.room.ID, env.guest.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	_, err = env.ledger.CheckIn(booking.ID, day(2024, 1, 1))
	require.NoError(t, err)
	_, err = env.ledger.Cancel(booking.ID, "emergency")
	require.NoError(t, err)

	// 2 nights x 100 at a 50% cancellation fee.
	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, bill.Amount)
}

func TestZeroFeeMakesCancellationFree(t *testing.T) {
	env := newTestEnv(t, 0)

	booking, err := env.ledger.Create(env.room.ID, env.guest.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	_, err = env.ledger.CheckIn(booking.ID, day(2024, 1, 1))
	require.NoError(t, err)
	_, err = env.ledger.Cancel(booking.ID, "emergency")
	require.NoError(t, err)

	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, bill.Amount)
}

func TestPay(t *testing.T) {
	env := newTestEnv(t, 100)
	booking := env.checkedOutBooking(t)

	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)

	_, err = env.service.Pay("missing", 200)
	assert.ErrorIs(t, err, ErrBillNotFound)

	_, err = env.service.Pay(bill.ID, 150)
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	// The rejected payment must not settle the bill.
	kept, err := env.service.Get(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, kept.PaymentStatus)

	paid, err := env.service.Pay(bill.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	assert.False(t, paid.PaymentDate.IsZero())
	assert.Equal(t, 200.0, paid.Amount)

	_, err = env.service.Pay(bill.ID, 200)
	assert.ErrorIs(t, err, ErrBillAlreadyPaid)
}

func TestGetByBooking(t *testing.T) {
	env := newTestEnv(t, 100)
	booking := env.checkedOutBooking(t)

	_, err := env.service.GetByBooking(booking.ID)
	assert.ErrorIs(t, err, ErrBillNotFound)

	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)

	found, err := env.service.GetByBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, found.ID)
}

func TestReloadKeepsBills(t *testing.T) {
	env := newTestEnv(t, 100)
	booking := env.checkedOutBooking(t)

	bill, err := env.service.Generate(booking.ID)
	require.NoError(t, err)
	_, err = env.service.Pay(bill.ID, bill.Amount)
	require.NoError(t, err)

	logger := zerolog.Nop()
	reloaded, err := NewService(env.service.store, env.ledger, env.service.rooms, nil, env.service.policy, &logger)
	require.NoError(t, err)

	kept, err := reloaded.Get(bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, kept.PaymentStatus)
	assert.Equal(t, bill.Amount, kept.Amount)
}
