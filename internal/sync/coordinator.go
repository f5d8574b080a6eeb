// Package sync reconciles the local store with the remote mirror.
//
// Reconciliation is deliberately one-shot: a pass runs at boot and on
// explicit user refresh, never on a subscription, so a last-writer-wins
// remote overwrite cannot clobber concurrent edits mid-session. Reads
// pull remote over local; mutations write through the local store
// synchronously and push the changed records to the mirror best-effort,
// fire-and-forget, without retry.
package sync

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vsitelecom/fieldops/internal/connectivity"
	"github.com/vsitelecom/fieldops/internal/models"
	"github.com/vsitelecom/fieldops/internal/remote"
	"github.com/vsitelecom/fieldops/internal/store"
)

// ErrNotFound is returned by mutations addressing an unknown record.
var ErrNotFound = errors.New("sync: record not found")

// Remote is the slice of the mirror adapter the coordinator needs.
// A nil Remote means the app runs local-only.
type Remote interface {
	Probe(ctx context.Context) error
	FetchAll(ctx context.Context, collection string) ([]remote.Row, error)
	Upsert(ctx context.Context, collection string, rows []remote.Row) error
	DeleteByID(ctx context.Context, collection, id string) error
}

// State is the in-memory working set, hydrated from the local store at
// construction and overwritten collection-by-collection by sync passes.
type State struct {
	Clients      []models.Client       `json:"clients"`
	Products     []models.Product      `json:"products"`
	Services     []models.Service      `json:"services"`
	Quotes       []models.Quote        `json:"quotes"`
	Expenses     []models.Expense      `json:"expenses"`
	Appointments []models.Appointment  `json:"appointments"`
	Company      models.CompanyProfile `json:"company"`
}

// Coordinator owns the state and every mutation path. It replaces the
// usual module-level backend singleton with an explicitly constructed
// object whose lifetime is the application's.
type Coordinator struct {
	store   *store.Store
	remote  Remote
	monitor *connectivity.Monitor
	log     zerolog.Logger

	mu            sync.Mutex
	state         State
	schemaMissing bool
}

// New builds a coordinator and hydrates its state synchronously from
// the local store, so callers have usable data before any network I/O.
func New(st *store.Store, rem Remote, mon *connectivity.Monitor, log zerolog.Logger) (*Coordinator, error) {
	c := &Coordinator{store: st, remote: rem, monitor: mon, log: log}
	if err := c.hydrate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Coordinator) hydrate() error {
	var err error
	if c.state.Clients, err = store.LoadCollection[models.Client](c.store, store.KeyClients); err != nil {
		return err
	}
	if c.state.Products, err = store.LoadCollection[models.Product](c.store, store.KeyProducts); err != nil {
		return err
	}
	if c.state.Services, err = store.LoadCollection[models.Service](c.store, store.KeyServices); err != nil {
		return err
	}
	if c.state.Quotes, err = store.LoadCollection[models.Quote](c.store, store.KeyQuotes); err != nil {
		return err
	}
	if c.state.Expenses, err = store.LoadCollection[models.Expense](c.store, store.KeyExpenses); err != nil {
		return err
	}
	if c.state.Appointments, err = store.LoadCollection[models.Appointment](c.store, store.KeyAppointments); err != nil {
		return err
	}
	if c.state.Company, err = store.LoadCompany(c.store); err != nil {
		return err
	}
	return nil
}

// Snapshot returns a copy of the working set for read paths. Top-level
// slices are copied; callers must not mutate nested data.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Clients = append([]models.Client(nil), c.state.Clients...)
	s.Products = append([]models.Product(nil), c.state.Products...)
	s.Services = append([]models.Service(nil), c.state.Services...)
	s.Quotes = append([]models.Quote(nil), c.state.Quotes...)
	s.Expenses = append([]models.Expense(nil), c.state.Expenses...)
	s.Appointments = append([]models.Appointment(nil), c.state.Appointments...)
	return s
}

// RemoteConfigured reports whether a mirror adapter was supplied.
func (c *Coordinator) RemoteConfigured() bool { return c.remote != nil }

// Online reports the connectivity monitor's current state.
func (c *Coordinator) Online() bool { return c.monitor.Online() }

// SchemaMissing reports whether the last probe found the backend
// reachable but unprovisioned.
func (c *Coordinator) SchemaMissing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schemaMissing
}

func (c *Coordinator) setSchemaMissing(v bool) {
	c.mu.Lock()
	c.schemaMissing = v
	c.mu.Unlock()
}

// BootSync runs the one fetch-and-overwrite pass issued per app load.
func (c *Coordinator) BootSync(ctx context.Context) error { return c.syncPass(ctx) }

// Refresh is the user-triggered variant of the same pass.
func (c *Coordinator) Refresh(ctx context.Context) error { return c.syncPass(ctx) }

// syncPass probes the mirror, then fetches all seven collections
// concurrently. Each successful fetch overwrites memory and the local
// store; individual failures are logged and tolerated (partial sync).
// Offline or unconfigured, the pass is a silent no-op.
func (c *Coordinator) syncPass(ctx context.Context) error {
	if c.remote == nil {
		c.log.Debug().Msg("sync skipped: remote unconfigured")
		return nil
	}
	if !c.monitor.Online() {
		c.log.Debug().Msg("sync skipped: offline")
		return nil
	}
	if err := c.remote.Probe(ctx); err != nil {
		if errors.Is(err, remote.ErrSchemaMissing) {
			c.setSchemaMissing(true)
			c.log.Warn().Msg("remote schema missing, sync aborted; setup required")
			return remote.ErrSchemaMissing
		}
		// Transient failure: stay on local data, flag the indicator.
		c.monitor.SetOnline(false)
		c.log.Warn().Err(err).Msg("remote unreachable, operating local-only")
		return nil
	}
	c.setSchemaMissing(false)

	var wg sync.WaitGroup
	wg.Add(7)
	go func() {
		defer wg.Done()
		syncCollection(ctx, c, remote.Clients, store.KeyClients, func(s *State, v []models.Client) { s.Clients = v })
	}()
	go func() {
		defer wg.Done()
		syncCollection(ctx, c, remote.Products, store.KeyProducts, func(s *State, v []models.Product) { s.Products = v })
	}()
	go func() {
		defer wg.Done()
		syncCollection(ctx, c, remote.Services, store.KeyServices, func(s *State, v []models.Service) { s.Services = v })
	}()
	go func() {
		defer wg.Done()
		syncCollection(ctx, c, remote.Quotes, store.KeyQuotes, func(s *State, v []models.Quote) { s.Quotes = v })
	}()
	go func() {
		defer wg.Done()
		syncCollection(ctx, c, remote.Expenses, store.KeyExpenses, func(s *State, v []models.Expense) { s.Expenses = v })
	}()
	go func() {
		defer wg.Done()
		syncCollection(ctx, c, remote.Appointments, store.KeyAppointments, func(s *State, v []models.Appointment) { s.Appointments = v })
	}()
	go func() {
		defer wg.Done()
		c.syncCompany(ctx)
	}()
	wg.Wait()
	return nil
}

// syncCollection fetches one collection and, on success, overwrites
// both the in-memory slice and the persisted copy. Failures keep the
// local copy untouched.
func syncCollection[T any](ctx context.Context, c *Coordinator, collection, key string, assign func(*State, []T)) {
	rows, err := c.remote.FetchAll(ctx, collection)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", collection).Msg("fetch failed, keeping local copy")
		return
	}
	items, err := remote.DecodeRows[T](collection, rows)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", collection).Msg("decode failed, keeping local copy")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	assign(&c.state, items)
	if err := store.SaveCollection(c.store, key, items); err != nil {
		c.log.Error().Err(err).Str("collection", key).Msg("persist after sync failed")
	}
}

// syncCompany overwrites the singleton profile only when the mirror
// actually holds a row; an empty table keeps the local profile.
func (c *Coordinator) syncCompany(ctx context.Context) {
	rows, err := c.remote.FetchAll(ctx, remote.Company)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", remote.Company).Msg("fetch failed, keeping local copy")
		return
	}
	if len(rows) == 0 {
		return
	}
	profiles, err := remote.DecodeRows[models.CompanyProfile](remote.Company, rows[:1])
	if err != nil {
		c.log.Warn().Err(err).Str("collection", remote.Company).Msg("decode failed, keeping local copy")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Company = profiles[0]
	if err := store.SaveCompany(c.store, profiles[0]); err != nil {
		c.log.Error().Err(err).Msg("persist company after sync failed")
	}
}

// pushUpsert sends one changed record to the mirror without blocking
// the caller. Failures are logged and dropped; there is no retry.
func (c *Coordinator) pushUpsert(collection, id string, v any) {
	if c.remote == nil || !c.monitor.Online() {
		return
	}
	row, err := remote.EncodeRow(id, v)
	if err != nil {
		c.log.Error().Err(err).Str("collection", collection).Msg("encode for push failed")
		return
	}
	go func() {
		if err := c.remote.Upsert(context.Background(), collection, []remote.Row{row}); err != nil {
			c.log.Warn().Err(err).Str("collection", collection).Str("id", id).Msg("remote push failed")
		}
	}()
}

// pushDelete mirrors a local deletion, same contract as pushUpsert.
func (c *Coordinator) pushDelete(collection, id string) {
	if c.remote == nil || !c.monitor.Online() {
		return
	}
	go func() {
		if err := c.remote.DeleteByID(context.Background(), collection, id); err != nil {
			c.log.Warn().Err(err).Str("collection", collection).Str("id", id).Msg("remote delete failed")
		}
	}()
}
