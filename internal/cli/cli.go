package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"hotelier/internal/domain"
	"hotelier/internal/report"

	"github.com/rs/zerolog"
)

// App is the menu-driven text interface. Input and output are injected
// so tests can script a full session.
type App struct {
	scanner *bufio.Scanner
	out     io.Writer
	rooms   domain.RoomDirectory
	guests  domain.GuestDirectory
	ledger  domain.BookingLedger
	billing domain.BillingService
	reports *report.Service
	logger  *zerolog.Logger
	eof     bool
}

func NewApp(in io.Reader, out io.Writer, rooms domain.RoomDirectory, guests domain.GuestDirectory, ledger domain.BookingLedger, billing domain.BillingService, reports *report.Service, logger *zerolog.Logger) *App {
	return &App{
		scanner: bufio.NewScanner(in),
		out:     out,
		rooms:   rooms,
		guests:  guests,
		ledger:  ledger,
		billing: billing,
		reports: reports,
		logger:  logger,
	}
}

// Run drives the main menu until the operator quits or input ends.
// Domain errors are printed and the loop re-prompts; only I/O failures
// propagate.
func (a *App) Run(ctx context.Context) error {
	a.printf("\n%s\n", divider("=", 60))
	a.printf("%20s\n", "HOTEL MANAGEMENT")
	a.printf("%s\n", divider("=", 60))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if a.eof {
			return nil
		}

		a.printf("\nMAIN MENU:\n")
		a.printf("1. Room Management\n")
		a.printf("2. Guest Management\n")
		a.printf("3. Booking Management\n")
		a.printf("4. Billing\n")
		a.printf("5. Reports\n")
		a.printf("6. Exit\n")

		switch a.prompt("Select an option (1-6)") {
		case "1":
			a.roomMenu()
		case "2":
			a.guestMenu()
		case "3":
			a.bookingMenu()
		case "4":
			a.billingMenu()
		case "5":
			a.reportMenu()
		case "6", "q", "exit":
			a.printf("Goodbye.\n")
			return nil
		case "":
			// EOF or blank line; loop re-prompts until eof flag is set.
		default:
			a.printf("Invalid option. Please try again.\n")
		}
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func divider(ch string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ch
	}
	return out
}
