package database

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate brings the schema fully up.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.Up(db, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// RunGoose runs an arbitrary goose command against the embedded migrations;
// used by the admin CLI passthrough.
func RunGoose(command string, db *sql.DB, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	return goose.Run(command, db, "migrations", args...)
}
