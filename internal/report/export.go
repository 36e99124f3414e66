package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportBookings writes an Excel workbook with one row per room and one
// column per day of the period; each cell lists the bookings covering
// that day. Returns the file path.
func (s *Service) ExportBookings(startDate, endDate time.Time) (string, error) {
	startDate = truncate(startDate)
	endDate = truncate(endDate)
	if endDate.Before(startDate) {
		return "", ErrInvalidPeriod
	}

	if err := os.MkdirAll(s.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	rooms := s.rooms.List(models.RoomFilter{})
	bookings := s.ledger.Find(models.BookingFilter{From: startDate, To: endDate.AddDate(0, 0, 1)})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		startDate.Format(models.DateFormat), endDate.Format(models.DateFormat)))

	dateCols := s.writeDateHeaders(f, sheetName, startDate, endDate)
	s.writeRoomHeaders(f, sheetName, rooms)
	s.writeBookingCells(f, sheetName, rooms, bookings, dateCols)

	_ = f.SetColWidth(sheetName, "A", "A", 22)
	for col := range dateCols {
		name, _ := excelize.ColumnNumberToName(dateCols[col])
		_ = f.SetColWidth(sheetName, name, name, 24)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(dateCols) + 1)
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		startDate.Format(models.DateFormat), endDate.Format(models.DateFormat))
	filePath := filepath.Join(s.exportPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	s.logger.Info().Str("file_path", filePath).Msg("Excel export created")
	return filePath, nil
}

func (s *Service) writeDateHeaders(f *excelize.File, sheetName string, startDate, endDate time.Time) map[string]int {
	col := 2
	currentDate := startDate
	dateCols := make(map[string]int)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for !currentDate.After(endDate) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(sheetName, cell, currentDate.Format("01-02"))
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
		dateCols[currentDate.Format(models.DateFormat)] = col

		col++
		currentDate = currentDate.AddDate(0, 0, 1)
	}
	return dateCols
}

func (s *Service) writeRoomHeaders(f *excelize.File, sheetName string, rooms []models.Room) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	row := 3
	for _, room := range rooms {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("%s (%s, %.2f/night)", room.Number, room.Category, room.Rate))
		_ = f.SetCellStyle(sheetName, cell, cell, style)
		row++
	}
}

func (s *Service) writeBookingCells(f *excelize.File, sheetName string, rooms []models.Room, bookings []models.Booking, dateCols map[string]int) {
	byRoom := make(map[string][]models.Booking)
	for _, booking := range bookings {
		byRoom[booking.RoomID] = append(byRoom[booking.RoomID], booking)
	}

	for dateKey, col := range dateCols {
		date, err := time.Parse(models.DateFormat, dateKey)
		if err != nil {
			continue
		}

		row := 3
		for _, room := range rooms {
			cell, _ := excelize.CoordinatesToCellName(col, row)

			var covering []models.Booking
			for _, booking := range byRoom[room.ID] {
				if booking.Covers(date) && booking.Status != models.StatusCancelled {
					covering = append(covering, booking)
				}
			}

			var cellValue string
			for _, booking := range covering {
				guestName := booking.GuestID
				if guest, err := s.guests.Get(booking.GuestID); err == nil {
					guestName = guest.Name
				}
				cellValue += fmt.Sprintf("%s %s (%s)\n", statusMark(booking.Status), guestName, booking.ID)
			}
			if cellValue == "" {
				cellValue = "free"
			}
			_ = f.SetCellValue(sheetName, cell, cellValue)

			if styleID, err := s.cellStyle(f, covering); err == nil {
				_ = f.SetCellStyle(sheetName, cell, cell, styleID)
			}
			row++
		}
	}
}

func statusMark(status models.BookingStatus) string {
	switch status {
	case models.StatusCheckedIn:
		return "[in]"
	case models.StatusCheckedOut:
		return "[out]"
	case models.StatusReserved:
		return "[res]"
	default:
		return "[?]"
	}
}

// cellStyle picks the fill: white for a free cell, green for a
// checked-in stay, yellow for a reservation.
func (s *Service) cellStyle(f *excelize.File, covering []models.Booking) (int, error) {
	fill := "#FFFFFF"
	for _, booking := range covering {
		switch booking.Status {
		case models.StatusCheckedIn:
			fill = "#C6EFCE"
		case models.StatusReserved:
			if fill == "#FFFFFF" {
				fill = "#FFEB9C"
			}
		}
	}

	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	})
}
