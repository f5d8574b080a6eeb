// Package remote is a thin client for the hosted mirror: seven
// document-style Postgres tables (id, doc, updated_at), one per entity
// collection. The mirror holds no authoritative copy; it is written
// best-effort and read only during sync passes.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Mirror collection names. They match the local store keys so sync can
// address both sides with one identifier.
const (
	Clients      = "clients"
	Products     = "products"
	Services     = "services"
	Quotes       = "quotes"
	Expenses     = "expenses"
	Appointments = "appointments"
	Company      = "company_profile"
)

// Collections lists every mirror table fetched during a sync pass.
var Collections = []string{Clients, Products, Services, Quotes, Expenses, Appointments, Company}

// CompanyRowID is the fixed id of the single company_profile row.
const CompanyRowID = "company"

// ErrSchemaMissing reports that the backend is reachable but the
// expected tables have not been provisioned yet (undefined_table,
// SQLSTATE 42P01). It must be distinguished from network/auth failures.
var ErrSchemaMissing = errors.New("remote: schema not provisioned")

// Row is one mirrored record: the entity serialized as a JSON document
// keyed by its opaque id.
type Row struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Doc       []byte    `gorm:"type:jsonb;not null" json:"doc"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Adapter wraps the Postgres connection. Construct it explicitly and
// pass it down; there is deliberately no package-level instance.
type Adapter struct {
	db  *gorm.DB
	dsn string
}

// Open connects to the mirror. It does not probe; call Probe to find
// out whether the schema exists.
func Open(dsn string) (*Adapter, error) {
	if dsn == "" {
		return nil, errors.New("remote: empty dsn")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("remote: connect: %w", err)
	}
	return &Adapter{db: db, dsn: dsn}, nil
}

// Close releases the underlying connection pool.
func (a *Adapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Probe issues a minimal read against one collection. It returns nil
// when the schema is usable, ErrSchemaMissing when the table does not
// exist, and the transport error otherwise.
func (a *Adapter) Probe(ctx context.Context) error {
	var rows []Row
	err := a.db.WithContext(ctx).Table(Clients).Select("id").Limit(1).Find(&rows).Error
	if err == nil {
		return nil
	}
	if isUndefinedTable(err) {
		return ErrSchemaMissing
	}
	return fmt.Errorf("remote: probe: %w", err)
}

// FetchAll returns every row of a collection. Quotes come back newest
// first so the freshest work orders lead the list.
func (a *Adapter) FetchAll(ctx context.Context, collection string) ([]Row, error) {
	q := a.db.WithContext(ctx).Table(collection)
	if collection == Quotes {
		q = q.Order("updated_at desc")
	}
	var rows []Row
	if err := q.Find(&rows).Error; err != nil {
		if isUndefinedTable(err) {
			return nil, ErrSchemaMissing
		}
		return nil, fmt.Errorf("remote: fetch %s: %w", collection, err)
	}
	return rows, nil
}

// Upsert writes the given rows, replacing existing documents by id.
func (a *Adapter) Upsert(ctx context.Context, collection string, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	for i := range rows {
		rows[i].UpdatedAt = now
	}
	err := a.db.WithContext(ctx).Table(collection).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("remote: upsert %s: %w", collection, err)
	}
	return nil
}

// DeleteByID removes one row; deleting an absent id is a no-op.
func (a *Adapter) DeleteByID(ctx context.Context, collection, id string) error {
	if err := a.db.WithContext(ctx).Table(collection).Where("id = ?", id).Delete(&Row{}).Error; err != nil {
		return fmt.Errorf("remote: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
