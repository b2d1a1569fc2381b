package repository

import (
	"context"
	"database/sql"
	"fmt"

	"h2o-bounty/internal/models"
	"h2o-bounty/pkg/aptos"
)

const defaultListLimit = 50

// TxLog records the outcome of every write the server saw through to the chain.
type TxLog struct {
	db *sql.DB
}

func NewTxLog(db *sql.DB) *TxLog {
	return &TxLog{db: db}
}

func (l *TxLog) Record(ctx context.Context, rec models.TxRecord) error {
	query := `INSERT INTO transactions (hash, function, sender, success, vm_status, error)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := l.db.ExecContext(ctx, query,
		rec.Hash, rec.Function, aptos.NormalizeAddress(rec.Sender), rec.Success, rec.VMStatus, rec.Error)
	if err != nil {
		return fmt.Errorf("record transaction %s: %w", rec.Hash, err)
	}
	return nil
}

// ListBySender returns the newest records first. limit <= 0 uses the default page size.
func (l *TxLog) ListBySender(ctx context.Context, sender string, limit int) ([]models.TxRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT id, hash, function, sender, success, vm_status, error, created_at
              FROM transactions WHERE sender = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := l.db.QueryContext(ctx, query, aptos.NormalizeAddress(sender), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.TxRecord{}
	for rows.Next() {
		var rec models.TxRecord
		if err := rows.Scan(&rec.ID, &rec.Hash, &rec.Function, &rec.Sender, &rec.Success,
			&rec.VMStatus, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
