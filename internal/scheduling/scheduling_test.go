package scheduling

import (
	"errors"
	"testing"

	"github.com/vsitelecom/fieldops/internal/models"
)

func TestEndTime(t *testing.T) {
	cases := []struct {
		start   string
		minutes int
		want    string
	}{
		{"08:00", 90, "09:30"},
		{"08:30", 30, "09:00"},
		{"23:30", 45, "24:15"},
		{"09:15", 0, "09:15"},
	}
	for _, c := range cases {
		if got := EndTime(c.start, c.minutes); got != c.want {
			t.Fatalf("EndTime(%s, %d) = %s, want %s", c.start, c.minutes, got, c.want)
		}
	}
}

func TestConflicts(t *testing.T) {
	day := "2026-03-02"
	existing := []models.Appointment{
		{ID: "a1", QuoteID: "q1", Date: day, StartTime: "08:00", EndTime: "10:00", Status: models.AppointmentScheduled},
		{ID: "a2", QuoteID: "q2", Date: "2026-03-03", StartTime: "08:00", EndTime: "10:00", Status: models.AppointmentScheduled},
		{ID: "a3", QuoteID: "q3", Date: day, StartTime: "13:00", EndTime: "14:00", Status: models.AppointmentCanceled},
	}

	if !Conflicts(existing, day, "09:00", "11:00") {
		t.Fatal("start inside existing slot must conflict")
	}
	if !Conflicts(existing, day, "07:00", "09:00") {
		t.Fatal("end inside existing slot must conflict")
	}
	if !Conflicts(existing, day, "08:00", "10:00") {
		t.Fatal("identical slot must conflict")
	}
	// Edge-touching is allowed on both sides.
	if Conflicts(existing, day, "10:00", "12:00") {
		t.Fatal("candidate starting at existing end must not conflict")
	}
	if Conflicts(existing, day, "06:00", "08:00") {
		t.Fatal("candidate ending at existing start must not conflict")
	}
	// Other days never conflict.
	if Conflicts(existing, "2026-03-04", "08:00", "10:00") {
		t.Fatal("different date must not conflict")
	}
	// Canceled appointments release their slot.
	if Conflicts(existing, day, "13:00", "14:00") {
		t.Fatal("canceled appointment must not block the slot")
	}
}

func TestValidate(t *testing.T) {
	appts := []models.Appointment{
		{ID: "a1", QuoteID: "q1", Status: models.AppointmentScheduled},
		{ID: "a2", QuoteID: "q2", Status: models.AppointmentCanceled},
	}

	if err := Validate(models.Quote{ID: "q3", Status: models.QuoteDraft}, appts); !errors.Is(err, ErrQuoteNotApproved) {
		t.Fatalf("expected ErrQuoteNotApproved got %v", err)
	}
	if err := Validate(models.Quote{ID: "q1", Status: models.QuoteApproved}, appts); !errors.Is(err, ErrAlreadyScheduled) {
		t.Fatalf("expected ErrAlreadyScheduled got %v", err)
	}
	// A canceled appointment does not occupy the slot.
	if err := Validate(models.Quote{ID: "q2", Status: models.QuoteApproved}, appts); err != nil {
		t.Fatalf("expected canceled appointment to free the quote, got %v", err)
	}
	if err := Validate(models.Quote{ID: "q3", Status: models.QuoteApproved}, appts); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}
