package main

import (
	"database/sql"

	"github.com/marketpulse-systems/itchbook/common/database"
	"github.com/marketpulse-systems/itchbook/model"
)

// sqlStore adapts common/database's package-level functions to the
// tradeInserter interface, so tradeHandler can be exercised in tests
// against a fake without a live Postgres connection.
type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) InsertExecutedTrade(t model.ExecutedTrade) error {
	return database.InsertExecutedTrade(s.db, t)
}
