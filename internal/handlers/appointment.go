package handlers

import (
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
	"github.com/vsitelecom/fieldops/internal/validation"
)

type AppointmentHandler struct {
	Coord *appsync.Coordinator
}

func NewAppointmentHandler(c *appsync.Coordinator) *AppointmentHandler {
	return &AppointmentHandler{Coord: c}
}

// List: GET /appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Appointments)
}

// Schedule: POST /appointments – books a slot for an approved quote.
// Duration falls back to the quote's estimated total when omitted.
func (h *AppointmentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var in struct {
		QuoteID         string `json:"quoteId"`
		Date            string `json:"date"`
		StartTime       string `json:"startTime"`
		DurationMinutes int    `json:"durationMinutes"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("quoteId", in.QuoteID, v)
	validation.DateISO("date", in.Date, v)
	validation.TimeHHMM("startTime", in.StartTime, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	a, err := h.Coord.ScheduleAppointment(in.QuoteID, in.Date, in.StartTime, in.DurationMinutes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// Complete: POST /appointments/complete?id=... – also advances the
// linked quote when it is still in the approved state.
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	a, err := h.Coord.CompleteAppointment(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// Delete: POST /appointments/delete?id=...
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Coord.RemoveAppointment(id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
