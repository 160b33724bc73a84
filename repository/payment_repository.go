package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// PaymentRepository handles pilgrim payment data operations
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetTotalPrice returns the package price of a pilgrim
func (r *PaymentRepository) GetTotalPrice(ctx context.Context, jamaahID string) (decimal.Decimal, error) {
	var totalPrice decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT total_price FROM jamaah WHERE id = $1`, jamaahID).Scan(&totalPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("jamaah %s: %w", jamaahID, utils.ErrRecordNotFound)
		}
		return decimal.Zero, fmt.Errorf("failed to get jamaah price: %w", err)
	}
	return totalPrice, nil
}

// ListPayments retrieves all payments of a pilgrim, oldest first
func (r *PaymentRepository) ListPayments(ctx context.Context, jamaahID string) ([]models.Payment, error) {
	query := `
		SELECT id, jamaah_id, amount, payment_date, description, status, created_at
		FROM jamaah_payments
		WHERE jamaah_id = $1
		ORDER BY payment_date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, jamaahID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.JamaahID, &payment.Amount, &payment.PaymentDate,
			&payment.Description, &payment.Status, &payment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}

	return payments, nil
}

// InsertPayment creates a new payment record
func (r *PaymentRepository) InsertPayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO jamaah_payments (id, jamaah_id, amount, payment_date, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, payment.ID, payment.JamaahID, payment.Amount,
		payment.PaymentDate, payment.Description, string(payment.Status), payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// UpdatePayment writes every field of an existing payment
func (r *PaymentRepository) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		UPDATE jamaah_payments
		SET amount = $1, payment_date = $2, description = $3, status = $4
		WHERE id = $5 AND jamaah_id = $6
	`
	result, err := r.db.ExecContext(ctx, query, payment.Amount, payment.PaymentDate,
		payment.Description, string(payment.Status), payment.ID, payment.JamaahID)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated payment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %s: %w", payment.ID, utils.ErrRecordNotFound)
	}
	return nil
}

// DeletePayment deletes a payment and reports whether it existed
func (r *PaymentRepository) DeletePayment(ctx context.Context, jamaahID, paymentID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jamaah_payments WHERE id = $1 AND jamaah_id = $2`, paymentID, jamaahID)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deleted payment: %w", err)
	}
	return affected > 0, nil
}
