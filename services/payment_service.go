package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// PaymentStore persists pilgrim payments
type PaymentStore interface {
	GetTotalPrice(ctx context.Context, jamaahID string) (decimal.Decimal, error)
	ListPayments(ctx context.Context, jamaahID string) ([]models.Payment, error)
	InsertPayment(ctx context.Context, payment *models.Payment) error
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, jamaahID, paymentID string) (bool, error)
}

// PaymentService handles payment business logic
type PaymentService struct {
	store  PaymentStore
	ledger *PaymentLedger
}

// NewPaymentService creates a new payment service
func NewPaymentService(store PaymentStore, ledger *PaymentLedger) *PaymentService {
	return &PaymentService{
		store:  store,
		ledger: ledger,
	}
}

// ListPayments returns the payments of a pilgrim with the derived balance
func (s *PaymentService) ListPayments(ctx context.Context, jamaahID string) (*models.PaymentListResponse, error) {
	totalPrice, payments, err := s.loadSnapshot(ctx, jamaahID)
	if err != nil {
		return nil, err
	}

	return &models.PaymentListResponse{
		JamaahID: jamaahID,
		Payments: payments,
		Balance:  s.ledger.ComputeBalance(totalPrice, payments),
	}, nil
}

// AddPayment records a new pending payment for a pilgrim
func (s *PaymentService) AddPayment(ctx context.Context, jamaahID string, req *models.PaymentRequest) (*models.Payment, error) {
	payment, err := s.paymentFromRequest(jamaahID, req)
	if err != nil {
		return nil, err
	}

	_, payments, err := s.loadSnapshot(ctx, jamaahID)
	if err != nil {
		return nil, err
	}

	updated, err := s.ledger.RecordPayment(payments, *payment)
	if err != nil {
		return nil, err
	}
	created := updated[len(updated)-1]
	created.CreatedAt = time.Now()

	if err := s.store.InsertPayment(ctx, &created); err != nil {
		s.logger(jamaahID, created.ID).WithError(err).Error("Failed to store payment")
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.logger(jamaahID, created.ID).WithField("amount", created.Amount.String()).Info("Payment recorded")
	return &created, nil
}

// UpdatePayment replaces the editable fields of a payment, keeping its status
func (s *PaymentService) UpdatePayment(ctx context.Context, jamaahID, paymentID string, req *models.PaymentRequest) (*models.Payment, error) {
	replacement, err := s.paymentFromRequest(jamaahID, req)
	if err != nil {
		return nil, err
	}
	replacement.ID = paymentID

	return s.replace(ctx, jamaahID, paymentID, func(current models.Payment) models.Payment {
		replacement.Status = current.Status
		replacement.CreatedAt = current.CreatedAt
		return *replacement
	})
}

// VerifyPayment marks a pending payment as verified
func (s *PaymentService) VerifyPayment(ctx context.Context, jamaahID, paymentID string) (*models.Payment, error) {
	return s.transition(ctx, jamaahID, paymentID, models.PaymentVerified)
}

// RejectPayment marks a pending payment as rejected
func (s *PaymentService) RejectPayment(ctx context.Context, jamaahID, paymentID string) (*models.Payment, error) {
	return s.transition(ctx, jamaahID, paymentID, models.PaymentRejected)
}

// DeletePayment deletes a payment at any status
func (s *PaymentService) DeletePayment(ctx context.Context, jamaahID, paymentID string) error {
	_, payments, err := s.loadSnapshot(ctx, jamaahID)
	if err != nil {
		return err
	}

	if _, removed := s.ledger.DeletePayment(payments, paymentID); !removed {
		return utils.NewNotFoundError(utils.ResourcePayment, paymentID)
	}

	removed, err := s.store.DeletePayment(ctx, jamaahID, paymentID)
	if err != nil {
		s.logger(jamaahID, paymentID).WithError(err).Error("Failed to delete payment")
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !removed {
		// Deleted by someone else between the read and the delete
		return utils.NewNotFoundError(utils.ResourcePayment, paymentID)
	}

	s.logger(jamaahID, paymentID).Info("Payment deleted")
	return nil
}

// transition moves a payment to a new status and persists the full record
func (s *PaymentService) transition(ctx context.Context, jamaahID, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	return s.replace(ctx, jamaahID, paymentID, func(current models.Payment) models.Payment {
		current.Status = status
		return current
	})
}

// replace builds the new version of a payment from the stored one, checks it
// through the ledger and writes the whole record back
func (s *PaymentService) replace(ctx context.Context, jamaahID, paymentID string, build func(models.Payment) models.Payment) (*models.Payment, error) {
	_, payments, err := s.loadSnapshot(ctx, jamaahID)
	if err != nil {
		return nil, err
	}

	index := findPayment(payments, paymentID)
	if index < 0 {
		return nil, utils.NewNotFoundError(utils.ResourcePayment, paymentID)
	}

	next := build(payments[index])
	updated, err := s.ledger.RecordPayment(payments, next)
	if err != nil {
		return nil, err
	}
	next = updated[index]

	if err := s.store.UpdatePayment(ctx, &next); err != nil {
		if errors.Is(err, utils.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError(utils.ResourcePayment, paymentID)
		}
		s.logger(jamaahID, paymentID).WithError(err).Error("Failed to update payment")
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.logger(jamaahID, paymentID).WithField("status", next.Status).Info("Payment updated")
	return &next, nil
}

// loadSnapshot reads the package price and payments of a pilgrim
func (s *PaymentService) loadSnapshot(ctx context.Context, jamaahID string) (decimal.Decimal, []models.Payment, error) {
	if err := utils.ValidateRequired(jamaahID, "jamaah id"); err != nil {
		return decimal.Zero, nil, err
	}

	totalPrice, err := s.store.GetTotalPrice(ctx, jamaahID)
	if err != nil {
		if errors.Is(err, utils.ErrRecordNotFound) {
			return decimal.Zero, nil, utils.NewNotFoundError(utils.ResourceJamaah, jamaahID)
		}
		s.logger(jamaahID, "").WithError(err).Error("Failed to load jamaah")
		return decimal.Zero, nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	payments, err := s.store.ListPayments(ctx, jamaahID)
	if err != nil {
		s.logger(jamaahID, "").WithError(err).Error("Failed to list payments")
		return decimal.Zero, nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	return totalPrice, payments, nil
}

func (s *PaymentService) paymentFromRequest(jamaahID string, req *models.PaymentRequest) (*models.Payment, error) {
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	date, err := utils.ParseDate(req.PaymentDate, "payment_date")
	if err != nil {
		return nil, err
	}

	return &models.Payment{
		JamaahID:    jamaahID,
		Amount:      utils.Round(req.Amount),
		PaymentDate: date,
		Description: strings.TrimSpace(req.Description),
	}, nil
}

func (s *PaymentService) logger(jamaahID, paymentID string) *logrus.Entry {
	fields := logrus.Fields{"jamaah_id": jamaahID}
	if paymentID != "" {
		fields["payment_id"] = paymentID
	}
	return utils.Logger.WithFields(fields)
}
