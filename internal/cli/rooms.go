package cli

import (
	"hotelier/internal/models"
)

func (a *App) roomMenu() {
	for !a.eof {
		a.printf("\nROOM MANAGEMENT:\n")
		a.printf("1. View All Rooms\n")
		a.printf("2. Add New Room\n")
		a.printf("3. Update Room Details\n")
		a.printf("4. Search Room\n")
		a.printf("5. Back to Main Menu\n")

		switch a.prompt("Select an option (1-5)") {
		case "1":
			a.listRooms()
		case "2":
			a.addRoom()
		case "3":
			a.updateRoom()
		case "4":
			a.searchRoom()
		case "5":
			return
		case "":
		default:
			a.printf("Invalid option. Please try again.\n")
		}
	}
}

func (a *App) listRooms() {
	rooms := a.rooms.List(models.RoomFilter{})
	if len(rooms) == 0 {
		a.printf("No rooms available.\n")
		return
	}

	a.printf("\nROOM LIST:\n")
	a.printf("%-10s %-10s %-15s %-10s %-12s\n", "ID", "Number", "Category", "Rate", "Status")
	for _, room := range rooms {
		a.printf("%-10s %-10s %-15s %-10.2f %-12s\n", room.ID, room.Number, room.Category, room.Rate, room.Status)
	}
}

func (a *App) addRoom() {
	number := a.promptRequired("Enter Room Number")
	category := a.promptRequired("Enter Room Category (Single/Double/Suite)")
	rate, err := a.promptFloat("Enter Room Rate per Night")
	if err != nil {
		a.reportErr(err)
		return
	}

	room, err := a.rooms.Upsert(models.Room{Number: number, Category: category, Rate: rate})
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Room %s added with ID %s.\n", room.Number, room.ID)
}

func (a *App) updateRoom() {
	number := a.promptRequired("Enter Room Number to Update")
	room, err := a.rooms.GetByNumber(number)
	if err != nil {
		a.reportErr(err)
		return
	}

	if category := a.prompt("Enter New Category (leave blank to keep current)"); category != "" {
		room.Category = category
	}
	if raw := a.prompt("Enter New Rate (leave blank to keep current)"); raw != "" {
		rate, err := a.promptParseFloat(raw)
		if err != nil {
			a.reportErr(err)
			return
		}
		room.Rate = rate
	}
	if status := a.prompt("Enter New Status (available/occupied/maintenance, blank to keep)"); status != "" {
		room.Status = models.RoomStatus(status)
	}

	if _, err := a.rooms.Upsert(*room); err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Room %s updated.\n", room.Number)
}

func (a *App) searchRoom() {
	number := a.promptRequired("Enter Room Number to Search")
	room, err := a.rooms.GetByNumber(number)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("\nRoom Details:\nID: %s\nNumber: %s\nCategory: %s\nRate: %.2f\nStatus: %s\n",
		room.ID, room.Number, room.Category, room.Rate, room.Status)
}
