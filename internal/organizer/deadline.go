package organizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DeadlineColumn = "Prazo (90 dias)"
	StatusColumn   = "Status"

	// Display format for dates at the boundary; comparisons never use it.
	displayDateFormat = "02/01/2006"

	deadlineDays     = 90
	dueSoonThreshold = 5
)

// StatusKind classifies a record's deadline relative to the processing run.
type StatusKind int

const (
	StatusInvalidDate StatusKind = iota
	StatusOverdue
	StatusDueSoon
	StatusOnTime
)

// Status is the computed deadline classification. DaysRemaining is only
// meaningful for StatusDueSoon.
type Status struct {
	Kind          StatusKind
	DaysRemaining int
}

// Label renders the status the way it is persisted and displayed.
func (s Status) Label() string {
	switch s.Kind {
	case StatusInvalidDate:
		return "Data Inválida"
	case StatusOverdue:
		return "Vencido"
	case StatusDueSoon:
		return fmt.Sprintf("Vence em %d dias", s.DaysRemaining)
	default:
		return "No Prazo"
	}
}

var referenceDateFormats = []string{
	"02/01/2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
}

// ParseReferenceDate parses the free-form emission date cell. Besides the
// textual formats, spreadsheet readers may hand back the raw Excel serial
// (days since 1899-12-30). Unparseable input reports ok=false, which the
// pipeline turns into StatusInvalidDate for that record only.
func ParseReferenceDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, format := range referenceDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		days := int(serial)
		frac := serial - float64(days)
		return epoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour))), true
	}

	return time.Time{}, false
}

// Deadline is the reference date plus 90 calendar days.
func Deadline(reference time.Time) time.Time {
	return reference.AddDate(0, 0, deadlineDays)
}

// ComputeStatus classifies a deadline against now using whole-day
// difference. now is evaluated once per processing run so a batch is
// internally consistent.
func ComputeStatus(deadline time.Time, valid bool, now time.Time) Status {
	if !valid {
		return Status{Kind: StatusInvalidDate}
	}

	days := int(math.Floor(deadline.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return Status{Kind: StatusOverdue}
	case days <= dueSoonThreshold:
		return Status{Kind: StatusDueSoon, DaysRemaining: days}
	default:
		return Status{Kind: StatusOnTime}
	}
}
