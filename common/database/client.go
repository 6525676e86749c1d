package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/marketpulse-systems/itchbook/model"
)

// max retries for connection do DB
// In the future can be extracted to parameters
const maxRetries = 10

// EnsureTableExists ensures existence of the trades table, to store executed trades
func EnsureTableExists(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS trades (
		execution_id VARCHAR(255) PRIMARY KEY,
		symbol VARCHAR(16) NOT NULL,
		price BIGINT NOT NULL,
		quantity BIGINT NOT NULL,
		maker_order_id BIGINT NOT NULL,
		taker_order_id BIGINT NOT NULL,
		maker_side VARCHAR(8) NOT NULL,
		executed_at TIMESTAMP NOT NULL
	);`
	_, err := db.Exec(createTableSQL)
	if err == nil {
		slog.Info("table 'trades' is ready")
	}
	return err
}

// InsertExecutedTrade persists one fill, ignoring the row if execution_id
// already exists — a consumer group replaying a partition after a crash
// must not fail on a trade it already wrote.
func InsertExecutedTrade(db *sql.DB, t model.ExecutedTrade) error {
	const insertSQL = `
	INSERT INTO trades (execution_id, symbol, price, quantity, maker_order_id, taker_order_id, maker_side, executed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (execution_id) DO NOTHING;`

	_, err := db.Exec(insertSQL,
		t.ExecutionID, t.Symbol, t.Price, t.Quantity, t.MakerID, t.TakerID, t.MakerSide, t.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("insert executed trade %s: %w", t.ExecutionID, err)
	}
	return nil
}

func ConnectWithRetries(cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	var db *sql.DB
	var err error

	// Retry loop
	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			slog.Info("Successfully connected to the database")
			return db, nil
		}

		slog.Warn("Waiting for database...", "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}
