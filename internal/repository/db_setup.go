package repository

import (
	"database/sql"
	"log"

	"h2o-bounty/pkg/logger"
)

func CreateTableIfNotExists(db *sql.DB) {
	query := `
CREATE TABLE IF NOT EXISTS transactions (
    id SERIAL PRIMARY KEY,
    hash VARCHAR(66) NOT NULL,
    function TEXT NOT NULL,
    sender VARCHAR(66) NOT NULL,
    success BOOLEAN NOT NULL DEFAULT FALSE,
    vm_status TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS transactions_sender_idx ON transactions (sender, created_at DESC);
CREATE INDEX IF NOT EXISTS transactions_hash_idx ON transactions (hash);
    `

	_, err := db.Exec(query)
	if err != nil {
		log.Fatalf("Error creating table: %v", err)
	}
	logger.SystemLogger.Info("Table 'transactions' is ready.")
}

func DeleteAllTable(db *sql.DB) {
	query := `
    DROP TABLE IF EXISTS transactions;
    `

	_, err := db.Exec(query)
	if err != nil {
		log.Fatalf("Error deleting table: %v", err)
	}
	logger.SystemLogger.Info("Table 'transactions' is deleted.")
}
