package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the verification state of a pilgrim payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// paymentTransitions lists the status changes an authorized actor may make.
// Keeping the same status is always allowed and means a field update.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentVerified, PaymentRejected},
}

// Valid reports whether the status is a known one
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentVerified, PaymentRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a payment in status s may move to next
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment represents an installment paid by a pilgrim (jamaah) towards a package
type Payment struct {
	ID          string          `json:"id" db:"id"`
	JamaahID    string          `json:"jamaah_id" db:"jamaah_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	Description string          `json:"description" db:"description"`
	Status      PaymentStatus   `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// PaymentBalance is the derived payment state of a pilgrim
type PaymentBalance struct {
	TotalPrice    decimal.Decimal `json:"total_price"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountPending decimal.Decimal `json:"amount_pending"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// PaymentListResponse is returned by the payments endpoint of a pilgrim
type PaymentListResponse struct {
	JamaahID string         `json:"jamaah_id"`
	Payments []Payment      `json:"payments"`
	Balance  PaymentBalance `json:"balance"`
}

// PaymentRequest represents the request body for creating or updating a payment
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" binding:"required,datetime=2006-01-02" validate:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"max=500" validate:"max=500"`
}
