package cli

import (
	"hotelier/internal/models"
)

func (a *App) guestMenu() {
	for !a.eof {
		a.printf("\nGUEST MANAGEMENT:\n")
		a.printf("1. View All Guests\n")
		a.printf("2. Register New Guest\n")
		a.printf("3. Update Guest Information\n")
		a.printf("4. Search Guest\n")
		a.printf("5. Back to Main Menu\n")

		switch a.prompt("Select an option (1-5)") {
		case "1":
			a.listGuests()
		case "2":
			a.addGuest()
		case "3":
			a.updateGuest()
		case "4":
			a.searchGuest()
		case "5":
			return
		case "":
		default:
			a.printf("Invalid option. Please try again.\n")
		}
	}
}

func (a *App) listGuests() {
	guests := a.guests.List()
	if len(guests) == 0 {
		a.printf("No guests registered.\n")
		return
	}
	a.printGuests(guests)
}

func (a *App) printGuests(guests []models.Guest) {
	a.printf("\n%-10s %-20s %-15s %-25s %-20s\n", "ID", "Name", "Phone", "Email", "Address")
	for _, guest := range guests {
		a.printf("%-10s %-20s %-15s %-25s %-20s\n", guest.ID, guest.Name, guest.Phone, guest.Email, guest.Address)
	}
}

func (a *App) addGuest() {
	guest := models.Guest{
		Name:    a.promptRequired("Enter Guest Name"),
		Phone:   a.prompt("Enter Guest Phone"),
		Email:   a.prompt("Enter Guest Email"),
		Address: a.prompt("Enter Guest Address"),
	}

	saved, err := a.guests.Upsert(guest)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Guest registered with ID %s.\n", saved.ID)
}

func (a *App) updateGuest() {
	id := a.promptRequired("Enter Guest ID to Update")
	guest, err := a.guests.Get(id)
	if err != nil {
		a.reportErr(err)
		return
	}

	if name := a.prompt("Enter New Name (leave blank to keep current)"); name != "" {
		guest.Name = name
	}
	if phone := a.prompt("Enter New Phone (leave blank to keep current)"); phone != "" {
		guest.Phone = phone
	}
	if email := a.prompt("Enter New Email (leave blank to keep current)"); email != "" {
		guest.Email = email
	}
	if address := a.prompt("Enter New Address (leave blank to keep current)"); address != "" {
		guest.Address = address
	}

	if _, err := a.guests.Upsert(*guest); err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Guest %s updated.\n", guest.ID)
}

func (a *App) searchGuest() {
	term := a.promptRequired("Enter Guest Name or ID to Search")
	results := a.guests.Search(term)
	if len(results) == 0 {
		a.printf("No guests found matching '%s'.\n", term)
		return
	}
	a.printGuests(results)
}
