package postgres

import (
	"embed"
	"errors"

	"github.com/DanielMat97/BackendExtorApp/pkg/e"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration. databaseURL must use the pgx5 scheme.
func Migrate(databaseURL string) error {
	const op = "storage.pg.Migrate"

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return e.Wrap(op+".Source", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return e.Wrap(op+".New", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return e.Wrap(op+".Up", err)
	}
	return nil
}
