package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// PaymentLedger derives the payment state of a single pilgrim
type PaymentLedger struct {
	newID func() string
}

// NewPaymentLedger creates a payment ledger that assigns uuid ids to new payments
func NewPaymentLedger() *PaymentLedger {
	return &PaymentLedger{newID: utils.GenerateID}
}

// ComputeBalance sums the verified payments against the package price.
// Remaining goes negative on overpayment; that is a refund owed, not an error.
func (l *PaymentLedger) ComputeBalance(totalPrice decimal.Decimal, payments []models.Payment) models.PaymentBalance {
	paid := utils.Sum(payments, func(p models.Payment) (decimal.Decimal, bool) {
		return p.Amount, p.Status == models.PaymentVerified
	})
	pending := utils.Sum(payments, func(p models.Payment) (decimal.Decimal, bool) {
		return p.Amount, p.Status == models.PaymentPending
	})

	return models.PaymentBalance{
		TotalPrice:    totalPrice,
		AmountPaid:    paid,
		AmountPending: pending,
		Remaining:     totalPrice.Sub(paid),
	}
}

// RecordPayment adds a new payment (no id) as pending, or replaces the
// payment with the same id. Replacements must respect the status
// transitions. The input slice is never modified.
func (l *PaymentLedger) RecordPayment(payments []models.Payment, payment models.Payment) ([]models.Payment, error) {
	if err := l.validatePayment(payment); err != nil {
		return payments, err
	}

	if payment.ID == "" {
		payment.ID = l.newID()
		payment.Status = models.PaymentPending

		updated := make([]models.Payment, len(payments), len(payments)+1)
		copy(updated, payments)
		return append(updated, payment), nil
	}

	index := findPayment(payments, payment.ID)
	if index < 0 {
		return payments, utils.NewNotFoundError(utils.ResourcePayment, payment.ID)
	}

	current := payments[index]
	if payment.Status == "" {
		payment.Status = current.Status
	}
	if err := CheckPaymentTransition(current.Status, payment.Status); err != nil {
		return payments, err
	}

	updated := make([]models.Payment, len(payments))
	copy(updated, payments)
	updated[index] = payment
	return updated, nil
}

// DeletePayment removes the payment with the given id at any status and
// reports whether anything was removed
func (l *PaymentLedger) DeletePayment(payments []models.Payment, paymentID string) ([]models.Payment, bool) {
	index := findPayment(payments, paymentID)
	if index < 0 {
		return payments, false
	}

	updated := make([]models.Payment, 0, len(payments)-1)
	updated = append(updated, payments[:index]...)
	updated = append(updated, payments[index+1:]...)
	return updated, true
}

// CheckPaymentTransition rejects status changes outside pending -> verified|rejected
func CheckPaymentTransition(from, to models.PaymentStatus) error {
	if !to.Valid() {
		return utils.NewValidationError(fmt.Sprintf("unknown payment status %q", to))
	}
	if !from.CanTransitionTo(to) {
		return utils.NewValidationError(fmt.Sprintf("invalid status transition %s -> %s", from, to))
	}
	return nil
}

func (l *PaymentLedger) validatePayment(payment models.Payment) error {
	if err := utils.ValidatePositive(payment.Amount, "amount"); err != nil {
		return err
	}
	return utils.ValidateDatePresent(payment.PaymentDate, "payment_date")
}

func findPayment(payments []models.Payment, paymentID string) int {
	for i, p := range payments {
		if p.ID == paymentID {
			return i
		}
	}
	return -1
}
