// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/go-petr/bank-insights/cmd/httpserver"
	"github.com/go-petr/bank-insights/internal/middleware"
	"github.com/go-petr/bank-insights/pkg/clockpkg"
	"github.com/go-petr/bank-insights/pkg/configpkg"
	"github.com/go-petr/bank-insights/pkg/dbpkg"
)

// SetupServer returns test server reading from the test database, which is flushed after the test.
func SetupServer(t *testing.T, clock clockpkg.Clock) (*httpserver.Server, *sql.DB) {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.GetLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	config.TableSource = configpkg.TableSourcePostgres

	server, err := httpserver.New(db, logger, config, clock)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config, clock) returned error: %v`, err)
	}

	return server, db
}

// Flush flushes the source tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE TABLE transactions, accounts, customers`); err != nil {
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

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
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
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}
