package sync

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsitelecom/fieldops/internal/models"
	"github.com/vsitelecom/fieldops/internal/remote"
	"github.com/vsitelecom/fieldops/internal/scheduling"
	"github.com/vsitelecom/fieldops/internal/store"
)

// Every mutation follows the same write-through shape: update memory
// and the local store under the lock, then push the changed records to
// the mirror outside it. The local write is the source of truth; the
// push may silently fail.

func (c *Coordinator) SaveClient(client models.Client) (models.Client, error) {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	c.mu.Lock()
	c.state.Clients = upsertByID(c.state.Clients, client, func(v models.Client) string { return v.ID })
	err := store.SaveCollection(c.store, store.KeyClients, c.state.Clients)
	c.mu.Unlock()
	if err != nil {
		return client, err
	}
	c.pushUpsert(remote.Clients, client.ID, client)
	return client, nil
}

func (c *Coordinator) DeleteClient(id string) error {
	c.mu.Lock()
	var removed bool
	c.state.Clients, removed = removeByID(c.state.Clients, id, func(v models.Client) string { return v.ID })
	var err error
	if removed {
		err = store.SaveCollection(c.store, store.KeyClients, c.state.Clients)
	}
	c.mu.Unlock()
	if !removed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.pushDelete(remote.Clients, id)
	return nil
}

func (c *Coordinator) SaveProduct(p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	c.mu.Lock()
	c.state.Products = upsertByID(c.state.Products, p, func(v models.Product) string { return v.ID })
	err := store.SaveCollection(c.store, store.KeyProducts, c.state.Products)
	c.mu.Unlock()
	if err != nil {
		return p, err
	}
	c.pushUpsert(remote.Products, p.ID, p)
	return p, nil
}

func (c *Coordinator) DeleteProduct(id string) error {
	c.mu.Lock()
	var removed bool
	c.state.Products, removed = removeByID(c.state.Products, id, func(v models.Product) string { return v.ID })
	var err error
	if removed {
		err = store.SaveCollection(c.store, store.KeyProducts, c.state.Products)
	}
	c.mu.Unlock()
	if !removed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.pushDelete(remote.Products, id)
	return nil
}

func (c *Coordinator) SaveService(s models.Service) (models.Service, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	c.mu.Lock()
	c.state.Services = upsertByID(c.state.Services, s, func(v models.Service) string { return v.ID })
	err := store.SaveCollection(c.store, store.KeyServices, c.state.Services)
	c.mu.Unlock()
	if err != nil {
		return s, err
	}
	c.pushUpsert(remote.Services, s.ID, s)
	return s, nil
}

func (c *Coordinator) DeleteService(id string) error {
	c.mu.Lock()
	var removed bool
	c.state.Services, removed = removeByID(c.state.Services, id, func(v models.Service) string { return v.ID })
	var err error
	if removed {
		err = store.SaveCollection(c.store, store.KeyServices, c.state.Services)
	}
	c.mu.Unlock()
	if !removed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.pushDelete(remote.Services, id)
	return nil
}

func (c *Coordinator) SaveExpense(e models.Expense) (models.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	c.mu.Lock()
	c.state.Expenses = upsertByID(c.state.Expenses, e, func(v models.Expense) string { return v.ID })
	err := store.SaveCollection(c.store, store.KeyExpenses, c.state.Expenses)
	c.mu.Unlock()
	if err != nil {
		return e, err
	}
	c.pushUpsert(remote.Expenses, e.ID, e)
	return e, nil
}

func (c *Coordinator) DeleteExpense(id string) error {
	c.mu.Lock()
	var removed bool
	c.state.Expenses, removed = removeByID(c.state.Expenses, id, func(v models.Expense) string { return v.ID })
	var err error
	if removed {
		err = store.SaveCollection(c.store, store.KeyExpenses, c.state.Expenses)
	}
	c.mu.Unlock()
	if !removed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.pushDelete(remote.Expenses, id)
	return nil
}

// SaveCompany replaces the singleton profile.
func (c *Coordinator) SaveCompany(p models.CompanyProfile) error {
	c.mu.Lock()
	c.state.Company = p
	err := store.SaveCompany(c.store, p)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.pushUpsert(remote.Company, remote.CompanyRowID, p)
	return nil
}

// SaveQuote creates or updates a quote. Derived figures are always
// recomputed server-side from the items and the company travel rate;
// whatever totals the caller sent are discarded. New quotes start in
// draft and are prepended so the most recent work lists first.
func (c *Coordinator) SaveQuote(q models.Quote) (models.Quote, error) {
	c.mu.Lock()
	if q.ID == "" {
		q.ID = uuid.NewString()
		if q.Status == "" {
			q.Status = models.QuoteDraft
		}
		if q.Date == "" {
			q.Date = time.Now().Format("2006-01-02")
		}
	}
	for i := range q.Items {
		if q.Items[i].ID == "" {
			q.Items[i].ID = uuid.NewString()
		}
	}
	q.Recalculate(c.state.Company.TravelRatePerKm)

	found := false
	for i := range c.state.Quotes {
		if c.state.Quotes[i].ID == q.ID {
			c.state.Quotes[i] = q
			found = true
			break
		}
	}
	if !found {
		c.state.Quotes = append([]models.Quote{q}, c.state.Quotes...)
	}
	err := store.SaveCollection(c.store, store.KeyQuotes, c.state.Quotes)
	c.mu.Unlock()
	if err != nil {
		return q, err
	}
	c.pushUpsert(remote.Quotes, q.ID, q)
	return q, nil
}

// DeleteQuote removes a quote regardless of its state. Callers confirm
// with the user first.
func (c *Coordinator) DeleteQuote(id string) error {
	c.mu.Lock()
	var removed bool
	c.state.Quotes, removed = removeByID(c.state.Quotes, id, func(v models.Quote) string { return v.ID })
	var err error
	if removed {
		err = store.SaveCollection(c.store, store.KeyQuotes, c.state.Quotes)
	}
	c.mu.Unlock()
	if !removed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.pushDelete(remote.Quotes, id)
	return nil
}

// ChangeQuoteStatus walks the lifecycle state machine. Moving to
// completed additionally requires a completed appointment for the
// quote, so work cannot be marked done before the visit happened.
func (c *Coordinator) ChangeQuoteStatus(id, to string) (models.Quote, error) {
	c.mu.Lock()
	idx := c.quoteIndex(id)
	if idx < 0 {
		c.mu.Unlock()
		return models.Quote{}, ErrNotFound
	}
	q := c.state.Quotes[idx]
	if to == models.QuoteCompleted && !c.hasCompletedAppointment(id) {
		c.mu.Unlock()
		return q, fmt.Errorf("quote %s: no completed appointment: %w", id, models.ErrBadTransition)
	}
	if err := q.Transition(to); err != nil {
		c.mu.Unlock()
		return q, err
	}
	c.state.Quotes[idx] = q
	err := store.SaveCollection(c.store, store.KeyQuotes, c.state.Quotes)
	c.mu.Unlock()
	if err != nil {
		return q, err
	}
	c.pushUpsert(remote.Quotes, q.ID, q)
	return q, nil
}

// InvoiceQuote records the fiscal note number and moves the quote to
// its terminal invoiced state.
func (c *Coordinator) InvoiceQuote(id, nfseNumber string) (models.Quote, error) {
	c.mu.Lock()
	idx := c.quoteIndex(id)
	if idx < 0 {
		c.mu.Unlock()
		return models.Quote{}, ErrNotFound
	}
	q := c.state.Quotes[idx]
	if err := q.Transition(models.QuoteInvoiced); err != nil {
		c.mu.Unlock()
		return q, err
	}
	q.NFSeNumber = nfseNumber
	c.state.Quotes[idx] = q
	err := store.SaveCollection(c.store, store.KeyQuotes, c.state.Quotes)
	c.mu.Unlock()
	if err != nil {
		return q, err
	}
	c.pushUpsert(remote.Quotes, q.ID, q)
	return q, nil
}

// AttachReport stores the technical service report on a quote.
func (c *Coordinator) AttachReport(id string, report models.ReportData) (models.Quote, error) {
	c.mu.Lock()
	idx := c.quoteIndex(id)
	if idx < 0 {
		c.mu.Unlock()
		return models.Quote{}, ErrNotFound
	}
	c.state.Quotes[idx].ReportData = &report
	q := c.state.Quotes[idx]
	err := store.SaveCollection(c.store, store.KeyQuotes, c.state.Quotes)
	c.mu.Unlock()
	if err != nil {
		return q, err
	}
	c.pushUpsert(remote.Quotes, q.ID, q)
	return q, nil
}

// ScheduleAppointment books a slot for an approved quote. Duration
// defaults to the quote's estimated total; the end time is derived,
// never supplied. A slot that overlaps an active appointment on the
// same date is rejected.
func (c *Coordinator) ScheduleAppointment(quoteID, date, startTime string, durationMinutes int) (models.Appointment, error) {
	c.mu.Lock()
	idx := c.quoteIndex(quoteID)
	if idx < 0 {
		c.mu.Unlock()
		return models.Appointment{}, ErrNotFound
	}
	q := c.state.Quotes[idx]
	if err := scheduling.Validate(q, c.state.Appointments); err != nil {
		c.mu.Unlock()
		return models.Appointment{}, err
	}
	if durationMinutes <= 0 {
		durationMinutes = q.TotalDurationMinutes
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}
	end := scheduling.EndTime(startTime, durationMinutes)
	if scheduling.Conflicts(c.state.Appointments, date, startTime, end) {
		c.mu.Unlock()
		return models.Appointment{}, scheduling.ErrConflict
	}
	a := models.Appointment{
		ID:        uuid.NewString(),
		QuoteID:   quoteID,
		ClientID:  q.ClientID,
		Date:      date,
		StartTime: startTime,
		EndTime:   end,
		Status:    models.AppointmentScheduled,
	}
	c.state.Appointments = append(c.state.Appointments, a)
	err := store.SaveCollection(c.store, store.KeyAppointments, c.state.Appointments)
	c.mu.Unlock()
	if err != nil {
		return a, err
	}
	c.pushUpsert(remote.Appointments, a.ID, a)
	return a, nil
}

// CompleteAppointment marks the visit done and, when the linked quote
// is still approved, advances it to completed in the same operation.
func (c *Coordinator) CompleteAppointment(id string) (models.Appointment, error) {
	c.mu.Lock()
	aIdx := -1
	for i := range c.state.Appointments {
		if c.state.Appointments[i].ID == id {
			aIdx = i
			break
		}
	}
	if aIdx < 0 {
		c.mu.Unlock()
		return models.Appointment{}, ErrNotFound
	}
	c.state.Appointments[aIdx].Status = models.AppointmentCompleted
	a := c.state.Appointments[aIdx]
	err := store.SaveCollection(c.store, store.KeyAppointments, c.state.Appointments)

	var quote models.Quote
	quoteChanged := false
	if err == nil {
		if qIdx := c.quoteIndex(a.QuoteID); qIdx >= 0 && c.state.Quotes[qIdx].Status == models.QuoteApproved {
			c.state.Quotes[qIdx].Status = models.QuoteCompleted
			quote = c.state.Quotes[qIdx]
			quoteChanged = true
			err = store.SaveCollection(c.store, store.KeyQuotes, c.state.Quotes)
		}
	}
	c.mu.Unlock()
	if err != nil {
		return a, err
	}
	c.pushUpsert(remote.Appointments, a.ID, a)
	if quoteChanged {
		c.pushUpsert(remote.Quotes, quote.ID, quote)
	}
	return a, nil
}

// RemoveAppointment deletes a booking. The quote keeps its state and
// becomes schedulable again.
func (c *Coordinator) RemoveAppointment(id string) error {
	c.mu.Lock()
	var removed bool
	c.state.Appointments, removed = removeByID(c.state.Appointments, id, func(v models.Appointment) string { return v.ID })
	var err error
	if removed {
		err = store.SaveCollection(c.store, store.KeyAppointments, c.state.Appointments)
	}
	c.mu.Unlock()
	if !removed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.pushDelete(remote.Appointments, id)
	return nil
}

// quoteIndex must be called with the lock held.
func (c *Coordinator) quoteIndex(id string) int {
	for i := range c.state.Quotes {
		if c.state.Quotes[i].ID == id {
			return i
		}
	}
	return -1
}

// hasCompletedAppointment must be called with the lock held.
func (c *Coordinator) hasCompletedAppointment(quoteID string) bool {
	for _, a := range c.state.Appointments {
		if a.QuoteID == quoteID && a.Status == models.AppointmentCompleted {
			return true
		}
	}
	return false
}

func upsertByID[T any](list []T, item T, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == id(item) {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func removeByID[T any](list []T, target string, id func(T) string) ([]T, bool) {
	for i := range list {
		if id(list[i]) == target {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
