package cli

import (
	"hotelier/internal/models"
)

func (a *App) billingMenu() {
	for !a.eof {
		a.printf("\nBILLING:\n")
		a.printf("1. View All Bills\n")
		a.printf("2. Generate Bill\n")
		a.printf("3. Process Payment\n")
		a.printf("4. Back to Main Menu\n")

		switch a.prompt("Select an option (1-4)") {
		case "1":
			a.listBills()
		case "2":
			a.generateBill()
		case "3":
			a.payBill()
		case "4":
			return
		case "":
		default:
			a.printf("Invalid option. Please try again.\n")
		}
	}
}

func (a *App) listBills() {
	bills := a.billing.List()
	if len(bills) == 0 {
		a.printf("No bills available.\n")
		return
	}

	a.printf("\n%-10s %-12s %-10s %-10s %-12s\n", "Bill ID", "Booking ID", "Amount", "Status", "Paid On")
	for _, bill := range bills {
		paidOn := "N/A"
		if !bill.PaymentDate.IsZero() {
			paidOn = bill.PaymentDate.Format(models.DateFormat)
		}
		a.printf("%-10s %-12s %-10.2f %-10s %-12s\n", bill.ID, bill.BookingID, bill.Amount, bill.PaymentStatus, paidOn)
	}
}

func (a *App) generateBill() {
	bookingID := a.promptRequired("Enter Booking ID")
	bill, err := a.billing.Generate(bookingID)
	if err != nil {
		a.reportErr(err)
		return
	}

	a.printf("\nBILL DETAILS:\n")
	a.printf("Bill ID: %s\n", bill.ID)
	a.printf("Booking ID: %s\n", bill.BookingID)
	a.printf("Total Amount: %.2f\n", bill.Amount)
	a.printf("Status: %s\n", bill.PaymentStatus)
}

func (a *App) payBill() {
	billID := a.promptRequired("Enter Bill ID")
	amount, err := a.promptFloat("Enter Payment Amount")
	if err != nil {
		a.reportErr(err)
		return
	}

	bill, err := a.billing.Pay(billID, amount)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Payment accepted; bill %s is %s (paid %s).\n",
		bill.ID, bill.PaymentStatus, bill.PaymentDate.Format(models.DateFormat))
}
