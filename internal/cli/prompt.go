package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotelier/internal/models"
)

func (a *App) prompt(label string) string {
	a.printf("%s: ", label)
	if !a.scanner.Scan() {
		a.eof = true
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

// promptRequired keeps asking until a non-empty value arrives or input
// ends.
func (a *App) promptRequired(label string) string {
	for !a.eof {
		if value := a.prompt(label); value != "" {
			return value
		}
		a.printf("A value is required.\n")
	}
	return ""
}

func (a *App) promptFloat(label string) (float64, error) {
	return a.promptParseFloat(a.prompt(label))
}

func (a *App) promptParseFloat(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return value, nil
}

func (a *App) promptDate(label string) (time.Time, error) {
	raw := a.prompt(label + " (YYYY-MM-DD)")
	date, err := time.Parse(models.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}

// reportErr prints a domain error and lets the caller re-prompt.
func (a *App) reportErr(err error) {
	a.printf("Error: %v\n", err)
}
