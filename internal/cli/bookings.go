package cli

import (
	"hotelier/internal/models"
)

func (a *App) bookingMenu() {
	for !a.eof {
		a.printf("\nBOOKING MANAGEMENT:\n")
		a.printf("1. View All Bookings\n")
		a.printf("2. Create New Booking\n")
		a.printf("3. Update Booking Dates\n")
		a.printf("4. Check In\n")
		a.printf("5. Check Out\n")
		a.printf("6. Cancel Booking\n")
		a.printf("7. Search Bookings\n")
		a.printf("8. Back to Main Menu\n")

		switch a.prompt("Select an option (1-8)") {
		case "1":
			a.printBookings(a.ledger.Find(models.BookingFilter{}))
		case "2":
			a.createBooking()
		case "3":
			a.updateBookingDates()
		case "4":
			a.checkIn()
		case "5":
			a.checkOut()
		case "6":
			a.cancelBooking()
		case "7":
			a.searchBookings()
		case "8":
			return
		case "":
		default:
			a.printf("Invalid option. Please try again.\n")
		}
	}
}

func (a *App) printBookings(bookings []models.Booking) {
	if len(bookings) == 0 {
		a.printf("No bookings found.\n")
		return
	}

	a.printf("\n%-10s %-10s %-10s %-12s %-12s %-12s\n", "ID", "Room", "Guest", "Check-in", "Check-out", "Status")
	for _, booking := range bookings {
		roomNumber := booking.RoomID
		if room, err := a.rooms.Get(booking.RoomID); err == nil {
			roomNumber = room.Number
		}
		a.printf("%-10s %-10s %-10s %-12s %-12s %-12s\n",
			booking.ID, roomNumber, booking.GuestID,
			booking.CheckIn.Format(models.DateFormat),
			booking.CheckOut.Format(models.DateFormat),
			booking.Status)
	}
}

func (a *App) createBooking() {
	number := a.promptRequired("Enter Room Number")
	room, err := a.rooms.GetByNumber(number)
	if err != nil {
		a.reportErr(err)
		return
	}
	guestID := a.promptRequired("Enter Guest ID")

	checkIn, err := a.promptDate("Enter Check-in Date")
	if err != nil {
		a.reportErr(err)
		return
	}
	checkOut, err := a.promptDate("Enter Check-out Date")
	if err != nil {
		a.reportErr(err)
		return
	}

	booking, err := a.ledger.Create(room.ID, guestID, checkIn, checkOut)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Booking created with ID %s (status %s).\n", booking.ID, booking.Status)
}

func (a *App) updateBookingDates() {
	id := a.promptRequired("Enter Booking ID")
	checkIn, err := a.promptDate("Enter New Check-in Date")
	if err != nil {
		a.reportErr(err)
		return
	}
	checkOut, err := a.promptDate("Enter New Check-out Date")
	if err != nil {
		a.reportErr(err)
		return
	}

	booking, err := a.ledger.UpdateDates(id, checkIn, checkOut)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Booking %s rescheduled to %s - %s.\n", booking.ID,
		booking.CheckIn.Format(models.DateFormat), booking.CheckOut.Format(models.DateFormat))
}

func (a *App) checkIn() {
	id := a.promptRequired("Enter Booking ID")
	date, err := a.promptDate("Enter Check-in Date")
	if err != nil {
		a.reportErr(err)
		return
	}

	booking, err := a.ledger.CheckIn(id, date)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Guest checked in; booking %s is now %s.\n", booking.ID, booking.Status)
}

func (a *App) checkOut() {
	id := a.promptRequired("Enter Booking ID")
	date, err := a.promptDate("Enter Check-out Date")
	if err != nil {
		a.reportErr(err)
		return
	}

	booking, err := a.ledger.CheckOut(id, date)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Guest checked out after %d night(s); booking %s is now %s.\n",
		booking.Nights(), booking.ID, booking.Status)
}

func (a *App) cancelBooking() {
	id := a.promptRequired("Enter Booking ID to Cancel")
	reason := a.prompt("Enter Cancellation Reason")

	booking, err := a.ledger.Cancel(id, reason)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Booking %s cancelled.\n", booking.ID)
}

func (a *App) searchBookings() {
	filter := models.BookingFilter{
		ID:         a.prompt("Booking ID (blank to skip)"),
		GuestID:    a.prompt("Guest ID (blank to skip)"),
		RoomNumber: a.prompt("Room Number (blank to skip)"),
	}
	if status := a.prompt("Status (reserved/checked-in/checked-out/cancelled, blank to skip)"); status != "" {
		filter.Status = models.BookingStatus(status)
	}
	a.printBookings(a.ledger.Find(filter))
}
