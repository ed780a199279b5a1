package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// latestMigrationVersion is the highest embedded migration; a store at this
// version has nothing to apply.
const latestMigrationVersion = 2

func newMigrationMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// expectDriverBootstrap mirrors what the postgres migration driver runs when
// it attaches to a connection with an existing schema_migrations table.
func expectDriverBootstrap(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT CURRENT_DATABASE()")).
		WillReturnRows(sqlmock.NewRows([]string{"current_database"}).AddRow("agapay"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT CURRENT_SCHEMA()")).
		WillReturnRows(sqlmock.NewRows([]string{"current_schema"}).AddRow("public"))
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_lock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM information_schema.tables")).
		WithArgs("public", "schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_unlock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectVersionRow(mock sqlmock.Sqlmock, version int64, dirty bool) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT version, dirty FROM "public"."schema_migrations" LIMIT 1`)).
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(version, dirty))
}

// assertPoolUsable checks that no connection is still checked out and that a
// pool capped at one connection can serve another caller.
func assertPoolUsable(t *testing.T, db *sql.DB) {
	t.Helper()
	assert.Equal(t, 0, db.Stats().InUse, "migration connection still checked out")

	db.SetMaxOpenConns(1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, db.PingContext(ctx), "pool of one blocked after migrations")
}

func TestGetMigrationVersion_ReleasesConnection(t *testing.T) {
	db, mock := newMigrationMock(t)
	expectDriverBootstrap(mock)
	expectVersionRow(mock, 1, false)

	version, dirty, err := GetMigrationVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	assert.NoError(t, mock.ExpectationsWereMet())

	assertPoolUsable(t, db)
}

func TestRunMigrations_UpToDateReleasesConnection(t *testing.T) {
	db, mock := newMigrationMock(t)
	expectDriverBootstrap(mock)
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_lock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectVersionRow(mock, latestMigrationVersion, false)
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_unlock($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(context.Background(), db, "up"))
	assert.NoError(t, mock.ExpectationsWereMet())

	assertPoolUsable(t, db)
}

func TestRunMigrations_DriverFailureReleasesConnection(t *testing.T) {
	db, mock := newMigrationMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT CURRENT_DATABASE()")).
		WillReturnError(errors.New("permission denied"))

	err := RunMigrations(context.Background(), db, "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create migration driver")

	assertPoolUsable(t, db)
}

func TestGetMigrationVersion_CancelledContext(t *testing.T) {
	db, _ := newMigrationMock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := GetMigrationVersion(ctx, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire migration connection")
}
