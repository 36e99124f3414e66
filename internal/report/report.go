package report

import (
	"errors"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// ErrInvalidPeriod is returned when a report period ends before it starts.
var ErrInvalidPeriod = errors.New("end date must not be before start date")

// Service produces read-only projections over the registries, the
// ledger and billing. It holds no state of its own.
type Service struct {
	rooms      domain.RoomDirectory
	guests     domain.GuestDirectory
	ledger     domain.BookingLedger
	billing    domain.BillingService
	exportPath string
	now        func() time.Time
	logger     *zerolog.Logger
}

func NewService(rooms domain.RoomDirectory, guests domain.GuestDirectory, ledger domain.BookingLedger, billing domain.BillingService, exportPath string, logger *zerolog.Logger) *Service {
	return &Service{
		rooms:      rooms,
		guests:     guests,
		ledger:     ledger,
		billing:    billing,
		exportPath: exportPath,
		now:        time.Now,
		logger:     logger,
	}
}

// CategoryOccupancy breaks occupancy down for one room category.
type CategoryOccupancy struct {
	Total    int
	Occupied int
}

// OccupancyReport is a snapshot of room utilization for a single day.
type OccupancyReport struct {
	Date        time.Time
	TotalRooms  int
	Occupied    int
	Maintenance int
	Available   int
	Rate        float64
	ByCategory  map[string]CategoryOccupancy
}

// Occupancy computes today's occupancy from ledger state: a room counts
// as occupied when a checked-in booking covers today.
func (s *Service) Occupancy() OccupancyReport {
	today := s.now()
	rooms := s.rooms.List(models.RoomFilter{})
	checkedIn := s.ledger.Find(models.BookingFilter{Status: models.StatusCheckedIn})

	occupiedRooms := make(map[string]bool)
	for _, booking := range checkedIn {
		if booking.Covers(truncate(today)) {
			occupiedRooms[booking.RoomID] = true
		}
	}

	rep := OccupancyReport{
		Date:       today,
		TotalRooms: len(rooms),
		ByCategory: make(map[string]CategoryOccupancy),
	}
	for _, room := range rooms {
		cat := rep.ByCategory[room.Category]
		cat.Total++
		switch {
		case occupiedRooms[room.ID]:
			rep.Occupied++
			cat.Occupied++
		case room.Status == models.RoomMaintenance:
			rep.Maintenance++
		default:
			rep.Available++
		}
		rep.ByCategory[room.Category] = cat
	}
	if rep.TotalRooms > 0 {
		rep.Rate = float64(rep.Occupied) / float64(rep.TotalRooms) * 100
	}
	return rep
}

// RevenueReport sums settled bills over a period.
type RevenueReport struct {
	Start       time.Time
	End         time.Time
	Total       float64
	PaidBills   int
	UnpaidBills int
	ByCategory  map[string]float64
}

// Revenue totals bills paid within [start, end] by payment date, and
// counts unpaid bills whose booking overlaps the period.
func (s *Service) Revenue(start, end time.Time) (RevenueReport, error) {
	start = truncate(start)
	end = truncate(end)
	if end.Before(start) {
		return RevenueReport{}, ErrInvalidPeriod
	}

	rep := RevenueReport{Start: start, End: end, ByCategory: make(map[string]float64)}
	for _, bill := range s.billing.List() {
		booking, err := s.ledger.Get(bill.BookingID)
		if err != nil {
			s.logger.Warn().Str("bill_id", bill.ID).Str("booking_id", bill.BookingID).Msg("bill references unknown booking")
			continue
		}

		if bill.PaymentStatus == models.PaymentPaid && !bill.PaymentDate.IsZero() {
			paid := truncate(bill.PaymentDate)
			if !paid.Before(start) && !paid.After(end) {
				rep.Total += bill.Amount
				rep.PaidBills++
				if room, err := s.rooms.Get(booking.RoomID); err == nil {
					rep.ByCategory[room.Category] += bill.Amount
				}
			}
			continue
		}

		if booking.Overlaps(start, end.AddDate(0, 0, 1)) {
			rep.UnpaidBills++
		}
	}
	return rep, nil
}

// GuestActivityReport counts the guest register against live bookings.
type GuestActivityReport struct {
	RegisteredGuests int
	ActiveGuests     int
	ActiveBookings   int
}

// GuestActivity counts registered guests and those holding an active
// booking.
func (s *Service) GuestActivity() GuestActivityReport {
	rep := GuestActivityReport{RegisteredGuests: len(s.guests.List())}

	active := make(map[string]bool)
	for _, booking := range s.ledger.Find(models.BookingFilter{}) {
		if booking.Active() {
			rep.ActiveBookings++
			active[booking.GuestID] = true
		}
	}
	rep.ActiveGuests = len(active)
	return rep
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
