package remote

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Provision creates the seven mirror tables via the embedded SQL
// migrations. It is an explicit operator action, never run implicitly:
// a sync pass that finds the schema missing aborts and leaves the
// backend untouched.
func (a *Adapter) Provision() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("remote: load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, a.dsn)
	if err != nil {
		return fmt.Errorf("remote: init migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("remote: provision: %w", err)
	}
	return nil
}
