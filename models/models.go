// models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a cash ledger entry
type TransactionKind string

const (
	TransactionIncome  TransactionKind = "income"
	TransactionExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one the ledger knows how to post
func (k TransactionKind) Valid() bool {
	return k == TransactionIncome || k == TransactionExpense
}

// Transaction represents a single entry of the cash book (Buku Kas)
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        TransactionKind `json:"transaction_type"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *string         `json:"account_id"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LedgerRow is a transaction annotated with its posting and the balance after it
type LedgerRow struct {
	Transaction
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// LedgerView is the computed ledger for one account filter
type LedgerView struct {
	AccountFilter     string          `json:"account_filter,omitempty"`
	Rows              []LedgerRow     `json:"rows"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	EndingBalance     decimal.Decimal `json:"ending_balance"`
	UnclassifiedCount int             `json:"unclassified_count"`
}

// AccountSummary holds the totals of one cash account
type AccountSummary struct {
	AccountID   string          `json:"account_id"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
	Count       int             `json:"count"`
}

// RecordTransactionRequest request model
type RecordTransactionRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02" validate:"required,datetime=2006-01-02"`
	Kind        TransactionKind `json:"transaction_type" binding:"required,oneof=income expense" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *string         `json:"account_id"`
	Description string          `json:"description" binding:"max=500" validate:"max=500"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind"`
	ResourceID string `json:"resource_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// NewTransaction creates a new Transaction instance
func NewTransaction(id string, date time.Time, kind TransactionKind, amount decimal.Decimal, accountID *string, description string) *Transaction {
	return &Transaction{
		ID:          id,
		Date:        date,
		Kind:        kind,
		Amount:      amount,
		AccountID:   accountID,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
