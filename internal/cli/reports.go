package cli

func (a *App) reportMenu() {
	for !a.eof {
		a.printf("\nREPORTS:\n")
		a.printf("1. Occupancy Report\n")
		a.printf("2. Revenue Report\n")
		a.printf("3. Guest Activity\n")
		a.printf("4. Export Bookings to Excel\n")
		a.printf("5. Back to Main Menu\n")

		switch a.prompt("Select an option (1-5)") {
		case "1":
			a.occupancyReport()
		case "2":
			a.revenueReport()
		case "3":
			a.guestActivityReport()
		case "4":
			a.exportBookings()
		case "5":
			return
		case "":
		default:
			a.printf("Invalid option. Please try again.\n")
		}
	}
}

func (a *App) occupancyReport() {
	rep := a.reports.Occupancy()

	a.printf("\nOCCUPANCY REPORT:\n")
	a.printf("Total Rooms: %d\n", rep.TotalRooms)
	a.printf("Occupied: %d\n", rep.Occupied)
	a.printf("Available: %d\n", rep.Available)
	a.printf("Under Maintenance: %d\n", rep.Maintenance)
	a.printf("Occupancy Rate: %.2f%%\n", rep.Rate)

	if len(rep.ByCategory) > 0 {
		a.printf("\n%-15s %-10s %-10s\n", "Category", "Total", "Occupied")
		for category, counts := range rep.ByCategory {
			a.printf("%-15s %-10d %-10d\n", category, counts.Total, counts.Occupied)
		}
	}
}

func (a *App) revenueReport() {
	start, err := a.promptDate("Enter Start Date")
	if err != nil {
		a.reportErr(err)
		return
	}
	end, err := a.promptDate("Enter End Date")
	if err != nil {
		a.reportErr(err)
		return
	}

	rep, err := a.reports.Revenue(start, end)
	if err != nil {
		a.reportErr(err)
		return
	}

	a.printf("\nREVENUE REPORT:\n")
	a.printf("Total Revenue: %.2f\n", rep.Total)
	a.printf("Paid Bills: %d\n", rep.PaidBills)
	a.printf("Unpaid Bills: %d\n", rep.UnpaidBills)
	for category, revenue := range rep.ByCategory {
		a.printf("  %s: %.2f\n", category, revenue)
	}
}

func (a *App) guestActivityReport() {
	rep := a.reports.GuestActivity()

	a.printf("\nGUEST ACTIVITY:\n")
	a.printf("Registered Guests: %d\n", rep.RegisteredGuests)
	a.printf("Guests with Active Bookings: %d\n", rep.ActiveGuests)
	a.printf("Active Bookings: %d\n", rep.ActiveBookings)
}

func (a *App) exportBookings() {
	start, err := a.promptDate("Enter Start Date")
	if err != nil {
		a.reportErr(err)
		return
	}
	end, err := a.promptDate("Enter End Date")
	if err != nil {
		a.reportErr(err)
		return
	}

	path, err := a.reports.ExportBookings(start, end)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Export written to %s.\n", path)
}
