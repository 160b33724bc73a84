package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// FinanceStore persists cash book transactions
type FinanceStore interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
}

// LedgerService handles cash book (Buku Kas) calculations
type LedgerService struct {
	store FinanceStore
	newID func() string
}

// NewLedgerService creates a new ledger service
func NewLedgerService(store FinanceStore) *LedgerService {
	return &LedgerService{
		store: store,
		newID: utils.GenerateID,
	}
}

// ComputeLedger filters the transactions by account, posts them in date
// order and returns the rows newest first. Each row keeps the balance
// computed during the chronological pass. The input slice is not modified.
func (s *LedgerService) ComputeLedger(transactions []models.Transaction, accountFilter string) *models.LedgerView {
	filtered := s.filterByAccount(transactions, accountFilter)

	// Same-day rows keep their arrival order
	sort.SliceStable(filtered, func(i, j int) bool {
		return calendarDay(filtered[i].Date).Before(calendarDay(filtered[j].Date))
	})

	view := &models.LedgerView{
		AccountFilter: normalizeAccountFilter(accountFilter),
		Rows:          make([]models.LedgerRow, len(filtered)),
		TotalDebit:    decimal.Zero,
		TotalCredit:   decimal.Zero,
		EndingBalance: decimal.Zero,
	}

	balance := decimal.Zero
	for i, tx := range filtered {
		row := models.LedgerRow{
			Transaction: tx,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		switch tx.Kind {
		case models.TransactionExpense:
			row.Debit = tx.Amount
			view.TotalDebit = view.TotalDebit.Add(tx.Amount)
			balance = balance.Sub(tx.Amount)
		case models.TransactionIncome:
			row.Credit = tx.Amount
			view.TotalCredit = view.TotalCredit.Add(tx.Amount)
			balance = balance.Add(tx.Amount)
		default:
			view.UnclassifiedCount++
		}

		row.RunningBalance = balance
		// Fill from the back so the newest row comes first
		view.Rows[len(filtered)-1-i] = row
	}
	view.EndingBalance = balance

	if view.UnclassifiedCount > 0 {
		utils.Logger.WithFields(logrus.Fields{
			"account_filter": view.AccountFilter,
			"count":          view.UnclassifiedCount,
		}).Warn("Ledger contains transactions with unknown kind")
	}

	return view
}

// SummarizeAccounts returns the totals of every account, sorted by account id.
// Transactions without an account are reported under an empty account id.
func (s *LedgerService) SummarizeAccounts(transactions []models.Transaction) []models.AccountSummary {
	byAccount := make(map[string]*models.AccountSummary)

	for _, tx := range transactions {
		accountID := ""
		if tx.AccountID != nil {
			accountID = *tx.AccountID
		}

		summary, exists := byAccount[accountID]
		if !exists {
			summary = &models.AccountSummary{
				AccountID:   accountID,
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
				Balance:     decimal.Zero,
			}
			byAccount[accountID] = summary
		}

		summary.Count++
		switch tx.Kind {
		case models.TransactionExpense:
			summary.TotalDebit = summary.TotalDebit.Add(tx.Amount)
		case models.TransactionIncome:
			summary.TotalCredit = summary.TotalCredit.Add(tx.Amount)
		}
		summary.Balance = summary.TotalCredit.Sub(summary.TotalDebit)
	}

	summaries := make([]models.AccountSummary, 0, len(byAccount))
	for _, summary := range byAccount {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].AccountID < summaries[j].AccountID
	})

	return summaries
}

// GetLedger loads the cash book and computes the view for an account filter
func (s *LedgerService) GetLedger(ctx context.Context, accountFilter string) (*models.LedgerView, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list transactions")
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return s.ComputeLedger(transactions, accountFilter), nil
}

// GetAccountSummaries loads the cash book and summarizes it per account
func (s *LedgerService) GetAccountSummaries(ctx context.Context) ([]models.AccountSummary, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list transactions")
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return s.SummarizeAccounts(transactions), nil
}

// RecordTransaction validates a new cash book entry and stores it
func (s *LedgerService) RecordTransaction(ctx context.Context, request *models.RecordTransactionRequest) (*models.Transaction, error) {
	if err := s.validateTransactionRequest(request); err != nil {
		return nil, err
	}

	date, err := utils.ParseDate(request.Date, "date")
	if err != nil {
		return nil, err
	}

	var accountID *string
	if request.AccountID != nil && strings.TrimSpace(*request.AccountID) != "" {
		trimmed := strings.TrimSpace(*request.AccountID)
		accountID = &trimmed
	}

	tx := models.NewTransaction(s.newID(), date, request.Kind, utils.Round(request.Amount), accountID, strings.TrimSpace(request.Description))
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		utils.Logger.WithError(err).WithField("transaction_id", tx.ID).Error("Failed to store transaction")
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	utils.Logger.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"kind":           tx.Kind,
		"amount":         tx.Amount.String(),
	}).Info("Transaction recorded")

	return tx, nil
}

// validateTransactionRequest rejects unknown kinds and negative amounts at the boundary
func (s *LedgerService) validateTransactionRequest(request *models.RecordTransactionRequest) error {
	if !request.Kind.Valid() {
		return utils.NewValidationError("transaction_type must be income or expense")
	}
	if err := utils.ValidateNonNegative(request.Amount, "amount"); err != nil {
		return err
	}
	return utils.ValidateStruct(request)
}

// filterByAccount copies the transactions matching the filter
func (s *LedgerService) filterByAccount(transactions []models.Transaction, accountFilter string) []models.Transaction {
	accountFilter = normalizeAccountFilter(accountFilter)

	filtered := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if accountFilter == "" || (tx.AccountID != nil && *tx.AccountID == accountFilter) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

func normalizeAccountFilter(accountFilter string) string {
	accountFilter = strings.TrimSpace(accountFilter)
	if strings.EqualFold(accountFilter, utils.AccountFilterAll) {
		return ""
	}
	return accountFilter
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
