// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/go-petr/account-engine/pkg/configpkg"
	"github.com/go-petr/account-engine/pkg/dbpkg"
)

// LoadConfig loads configs/app.env relative to a package two levels below the module root
// and brings the schema up to date.
func LoadConfig(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	if err := dbpkg.Migrate(config.DBDriver, config.DBSource, dbpkg.Up); err != nil {
		t.Fatalf("dbpkg.Migrate(up) returned error: %v", err)
	}

	return config
}

// Flush empties the accounts table and restarts its id sequence.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE TABLE accounts RESTART IDENTITY`); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	Flush(t, db)

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Errorf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})

	return tx
}
