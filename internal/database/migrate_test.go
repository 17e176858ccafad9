package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edonabdullahu1/city-sub003/internal/config"
)

func TestSchemaCoversAllTables(t *testing.T) {
	for _, table := range []string{"users", "refresh_tokens", "hotels", "hotel_rates", "flights",
		"packages", "flight_blocks", "package_prices", "bookings"} {
		assert.Contains(t, Schema(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(Schema()).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))

	mock.ExpectExec(Schema()).WillReturnError(errors.New("boom"))
	assert.ErrorContains(t, Migrate(context.Background(), db), "apply schema")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "travel", DBPass: "p@ss", DBHost: "db", DBPort: "3307", DBName: "packages"})

	mc, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:3307", mc.Addr)
	assert.Equal(t, "p@ss", mc.Passwd)
	assert.True(t, mc.ParseTime)
	assert.True(t, mc.MultiStatements)
	assert.Equal(t, time.UTC, mc.Loc)
}
