package organizer

import (
	"testing"
	"time"
)

func TestDeadline_NinetyCalendarDays(t *testing.T) {
	t.Parallel()

	reference := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if got := Deadline(reference); !got.Equal(want) {
		t.Fatalf("Deadline = %v, want %v", got, want)
	}
}

func TestComputeStatus_Boundaries(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		days  int
		kind  StatusKind
		label string
	}{
		{-1, StatusOverdue, "Vencido"},
		{0, StatusDueSoon, "Vence em 0 dias"},
		{5, StatusDueSoon, "Vence em 5 dias"},
		{6, StatusOnTime, "No Prazo"},
		{90, StatusOnTime, "No Prazo"},
	}
	for _, tc := range cases {
		deadline := now.AddDate(0, 0, tc.days)
		got := ComputeStatus(deadline, true, now)
		if got.Kind != tc.kind {
			t.Fatalf("days=%d: kind=%v, want %v", tc.days, got.Kind, tc.kind)
		}
		if got.Label() != tc.label {
			t.Fatalf("days=%d: label=%q, want %q", tc.days, got.Label(), tc.label)
		}
	}
}

func TestComputeStatus_InvalidDate(t *testing.T) {
	t.Parallel()

	got := ComputeStatus(time.Time{}, false, time.Now())
	if got.Kind != StatusInvalidDate || got.Label() != "Data Inválida" {
		t.Fatalf("got %v (%q)", got.Kind, got.Label())
	}
}

func TestComputeStatus_PartialDayFloors(t *testing.T) {
	t.Parallel()

	// 12 hours short of a full day behind now floors to -1, not 0.
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := ComputeStatus(deadline, true, now); got.Kind != StatusOverdue {
		t.Fatalf("got %v, want StatusOverdue", got.Kind)
	}
}

func TestParseReferenceDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"15/01/2024", "2024-01-15", "2024-01-15 00:00:00"} {
		got, ok := ParseReferenceDate(raw)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseReferenceDate(%q) = (%v, %v)", raw, got, ok)
		}
	}

	// Excel serial: days since 1899-12-30.
	got, ok := ParseReferenceDate("45306")
	if !ok || !got.Equal(want) {
		t.Fatalf("serial: got (%v, %v), want %v", got, ok, want)
	}

	for _, raw := range []string{"", "not a date", "31/02/2024", "-5"} {
		if _, ok := ParseReferenceDate(raw); ok {
			t.Fatalf("ParseReferenceDate(%q): expected failure", raw)
		}
	}
}
