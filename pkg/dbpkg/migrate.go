package dbpkg

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migration directions.
const (
	Up   = "up"
	Down = "down"
)

// Migrate applies the embedded schema migrations in the given direction.
// It opens and closes its own connection.
func Migrate(driver, source, direction string) error {
	if direction != Up && direction != Down {
		return errors.New("migration direction must be up or down")
	}

	db, err := Setup(driver, source)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		_ = db.Close()
		return err
	}

	target, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", target)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	if direction == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
