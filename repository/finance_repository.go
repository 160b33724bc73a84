// repository/finance_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadhlanhapp/umrah-backoffice/models"
)

// FinanceRepository handles database operations for the cash book
type FinanceRepository struct {
	DB *sql.DB
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(db *sql.DB) *FinanceRepository {
	return &FinanceRepository{DB: db}
}

// ListTransactions retrieves every cash book transaction in arrival order
func (r *FinanceRepository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, transaction_date, transaction_type, amount, account_id, description, created_at
         FROM finance_transactions ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		var accountID sql.NullString

		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Kind, &tx.Amount, &accountID, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if accountID.Valid {
			id := accountID.String
			tx.AccountID = &id
		}

		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}

// InsertTransaction saves a new transaction
func (r *FinanceRepository) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	var accountID sql.NullString
	if tx.AccountID != nil {
		accountID = sql.NullString{String: *tx.AccountID, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO finance_transactions
         (id, transaction_date, transaction_type, amount, account_id, description, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tx.ID, tx.Date, string(tx.Kind), tx.Amount, accountID, tx.Description, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}
