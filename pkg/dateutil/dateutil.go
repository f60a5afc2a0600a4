package dateutil

import (
	"fmt"
	"strings"
	"time"
)

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name for a month index 0..11.
func MonthName(index int) string {
	if index < 0 || index >= len(monthNames) {
		return ""
	}
	return monthNames[index]
}

// MonthShortName returns the three-letter Spanish abbreviation for a month index 0..11.
func MonthShortName(index int) string {
	name := MonthName(index)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// MonthsBetween counts whole calendar months from one date to another,
// ignoring the day of month. It is negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// PreviousMonth returns the calendar month preceding year/month.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// PeriodKey formats a year/month as MM/YYYY, the key used for INPC series.
func PeriodKey(year int, month time.Month) string {
	return fmt.Sprintf("%02d/%d", int(month), year)
}

// ParseDate accepts the date formats found in fiscal documents: RFC 3339,
// the CFDI local timestamp (2006-01-02T15:04:05) and a plain date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
