package models

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCanceled  = "canceled"
)

// Appointment is a scheduled execution slot for an approved quote.
// A quote has at most one active (non-canceled) appointment. Times are
// HH:MM strings compared lexically; the date is YYYY-MM-DD.
type Appointment struct {
	ID        string `json:"id"`
	QuoteID   string `json:"quoteId"`
	ClientID  string `json:"clientId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// Active reports whether the appointment still occupies its quote's
// single scheduling slot.
func (a Appointment) Active() bool { return a.Status != AppointmentCanceled }
