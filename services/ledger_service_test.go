package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

type fakeFinanceStore struct {
	transactions []models.Transaction
	listErr      error
	insertErr    error
}

func (f *fakeFinanceStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.transactions, nil
}

func (f *fakeFinanceStore) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.transactions = append(f.transactions, *tx)
	return nil
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func account(id string) *string {
	return &id
}

func tx(id string, d int, kind models.TransactionKind, amount int64, accountID *string) models.Transaction {
	return models.Transaction{
		ID:        id,
		Date:      day(d),
		Kind:      kind,
		Amount:    decimal.NewFromInt(amount),
		AccountID: accountID,
	}
}

func TestComputeLedger_RunningBalanceNewestFirst(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	transactions := []models.Transaction{
		tx("t3", 5, models.TransactionExpense, 30, nil),
		tx("t1", 1, models.TransactionIncome, 100, nil),
		tx("t2", 3, models.TransactionExpense, 20, nil),
	}

	view := service.ComputeLedger(transactions, "")

	require.Len(t, view.Rows, 3)
	assert.Equal(t, "t3", view.Rows[0].ID)
	assert.Equal(t, "t2", view.Rows[1].ID)
	assert.Equal(t, "t1", view.Rows[2].ID)

	assert.True(t, view.Rows[2].RunningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, view.Rows[1].RunningBalance.Equal(decimal.NewFromInt(80)))
	assert.True(t, view.Rows[0].RunningBalance.Equal(decimal.NewFromInt(50)))

	assert.True(t, view.Rows[2].Credit.Equal(decimal.NewFromInt(100)))
	assert.True(t, view.Rows[2].Debit.IsZero())
	assert.True(t, view.Rows[0].Debit.Equal(decimal.NewFromInt(30)))
	assert.True(t, view.Rows[0].Credit.IsZero())

	assert.True(t, view.TotalCredit.Equal(decimal.NewFromInt(100)))
	assert.True(t, view.TotalDebit.Equal(decimal.NewFromInt(50)))
	assert.True(t, view.EndingBalance.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 0, view.UnclassifiedCount)

	// Input order untouched
	assert.Equal(t, "t3", transactions[0].ID)
	assert.Equal(t, "t1", transactions[1].ID)
}

func TestComputeLedger_EndingBalanceMatchesTotals(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	transactions := []models.Transaction{
		tx("a", 2, models.TransactionIncome, 1500, account("bca")),
		tx("b", 2, models.TransactionExpense, 250, account("bca")),
		tx("c", 9, models.TransactionExpense, 4000, account("mandiri")),
		tx("d", 4, models.TransactionIncome, 75, nil),
	}

	view := service.ComputeLedger(transactions, "")

	assert.True(t, view.EndingBalance.Equal(view.TotalCredit.Sub(view.TotalDebit)))
	require.NotEmpty(t, view.Rows)
	assert.True(t, view.Rows[0].RunningBalance.Equal(view.EndingBalance))
	assert.True(t, view.EndingBalance.Equal(decimal.NewFromInt(-2675)))
}

func TestComputeLedger_SameDateKeepsInputOrder(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	transactions := []models.Transaction{
		tx("first", 1, models.TransactionIncome, 10, nil),
		tx("second", 1, models.TransactionExpense, 4, nil),
		tx("third", 1, models.TransactionIncome, 1, nil),
	}

	view := service.ComputeLedger(transactions, "")

	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{view.Rows[0].ID, view.Rows[1].ID, view.Rows[2].ID})
	assert.True(t, view.Rows[2].RunningBalance.Equal(decimal.NewFromInt(10)))
	assert.True(t, view.Rows[1].RunningBalance.Equal(decimal.NewFromInt(6)))
	assert.True(t, view.Rows[0].RunningBalance.Equal(decimal.NewFromInt(7)))
}

func TestComputeLedger_SameDayIgnoresTimeOfDay(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	evening := tx("evening", 1, models.TransactionIncome, 100, nil)
	evening.Date = day(1).Add(20 * time.Hour)
	earlyMorning := tx("early", 1, models.TransactionExpense, 30, nil)
	earlyMorning.Date = day(1).Add(1 * time.Hour)
	nextDay := tx("next", 2, models.TransactionExpense, 5, nil)

	view := service.ComputeLedger([]models.Transaction{nextDay, evening, earlyMorning}, "")

	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"next", "early", "evening"}, []string{view.Rows[0].ID, view.Rows[1].ID, view.Rows[2].ID})
	assert.True(t, view.Rows[2].RunningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, view.Rows[1].RunningBalance.Equal(decimal.NewFromInt(70)))
	assert.True(t, view.EndingBalance.Equal(decimal.NewFromInt(65)))
}

func TestComputeLedger_AccountFilter(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	transactions := []models.Transaction{
		tx("a", 1, models.TransactionIncome, 100, account("bca")),
		tx("b", 2, models.TransactionExpense, 40, account("mandiri")),
		tx("c", 3, models.TransactionExpense, 10, account("bca")),
		tx("d", 4, models.TransactionIncome, 5, nil),
	}

	view := service.ComputeLedger(transactions, "bca")
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "c", view.Rows[0].ID)
	assert.Equal(t, "a", view.Rows[1].ID)
	assert.True(t, view.EndingBalance.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, "bca", view.AccountFilter)

	all := service.ComputeLedger(transactions, "ALL")
	assert.Len(t, all.Rows, 4)
	assert.Equal(t, "", all.AccountFilter)

	none := service.ComputeLedger(transactions, "bni")
	assert.Empty(t, none.Rows)
	assert.True(t, none.EndingBalance.IsZero())
}

func TestComputeLedger_Empty(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	view := service.ComputeLedger(nil, "")

	assert.NotNil(t, view.Rows)
	assert.Empty(t, view.Rows)
	assert.True(t, view.TotalDebit.IsZero())
	assert.True(t, view.TotalCredit.IsZero())
	assert.True(t, view.EndingBalance.IsZero())
}

func TestComputeLedger_UnknownKindContributesNothing(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	transactions := []models.Transaction{
		tx("a", 1, models.TransactionIncome, 100, nil),
		tx("b", 2, models.TransactionKind("transfer"), 60, nil),
		tx("c", 3, models.TransactionExpense, 30, nil),
	}

	view := service.ComputeLedger(transactions, "")

	require.Len(t, view.Rows, 3)
	assert.Equal(t, 1, view.UnclassifiedCount)
	assert.True(t, view.Rows[1].Debit.IsZero())
	assert.True(t, view.Rows[1].Credit.IsZero())
	assert.True(t, view.Rows[1].RunningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, view.EndingBalance.Equal(decimal.NewFromInt(70)))
}

func TestSummarizeAccounts(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{})

	summaries := service.SummarizeAccounts([]models.Transaction{
		tx("a", 1, models.TransactionIncome, 100, account("mandiri")),
		tx("b", 2, models.TransactionExpense, 40, account("bca")),
		tx("c", 3, models.TransactionIncome, 10, account("bca")),
		tx("d", 4, models.TransactionExpense, 5, nil),
	})

	require.Len(t, summaries, 3)
	assert.Equal(t, "", summaries[0].AccountID)
	assert.True(t, summaries[0].Balance.Equal(decimal.NewFromInt(-5)))

	assert.Equal(t, "bca", summaries[1].AccountID)
	assert.Equal(t, 2, summaries[1].Count)
	assert.True(t, summaries[1].TotalDebit.Equal(decimal.NewFromInt(40)))
	assert.True(t, summaries[1].TotalCredit.Equal(decimal.NewFromInt(10)))
	assert.True(t, summaries[1].Balance.Equal(decimal.NewFromInt(-30)))

	assert.Equal(t, "mandiri", summaries[2].AccountID)
	assert.True(t, summaries[2].Balance.Equal(decimal.NewFromInt(100)))
}

func TestGetLedger_StoreFailure(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{listErr: errors.New("connection refused")})

	view, err := service.GetLedger(context.Background(), "")

	assert.Nil(t, view)
	assert.True(t, utils.IsKind(err, utils.KindInternal))
}

func TestRecordTransaction(t *testing.T) {
	store := &fakeFinanceStore{}
	service := NewLedgerService(store)
	service.newID = func() string { return "tx-1" }

	created, err := service.RecordTransaction(context.Background(), &models.RecordTransactionRequest{
		Date:        "2024-03-02",
		Kind:        models.TransactionIncome,
		Amount:      decimal.RequireFromString("1500000.456"),
		AccountID:   account("  bca "),
		Description: " DP umrah  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "tx-1", created.ID)
	assert.Equal(t, day(2), created.Date)
	assert.Equal(t, "1500000.46", created.Amount.StringFixed(2))
	require.NotNil(t, created.AccountID)
	assert.Equal(t, "bca", *created.AccountID)
	assert.Equal(t, "DP umrah", created.Description)
	assert.Len(t, store.transactions, 1)
}

func TestRecordTransaction_BlankAccountIsNil(t *testing.T) {
	store := &fakeFinanceStore{}
	service := NewLedgerService(store)

	created, err := service.RecordTransaction(context.Background(), &models.RecordTransactionRequest{
		Date:      "2024-03-02",
		Kind:      models.TransactionExpense,
		Amount:    decimal.NewFromInt(10),
		AccountID: account("   "),
	})

	require.NoError(t, err)
	assert.Nil(t, created.AccountID)
}

func TestRecordTransaction_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		request models.RecordTransactionRequest
	}{
		{
			name:    "unknown kind",
			request: models.RecordTransactionRequest{Date: "2024-03-02", Kind: "transfer", Amount: decimal.NewFromInt(10)},
		},
		{
			name:    "negative amount",
			request: models.RecordTransactionRequest{Date: "2024-03-02", Kind: models.TransactionIncome, Amount: decimal.NewFromInt(-1)},
		},
		{
			name:    "bad date",
			request: models.RecordTransactionRequest{Date: "02/03/2024", Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1)},
		},
		{
			name:    "missing date",
			request: models.RecordTransactionRequest{Kind: models.TransactionIncome, Amount: decimal.NewFromInt(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeFinanceStore{}
			service := NewLedgerService(store)

			created, err := service.RecordTransaction(context.Background(), &tt.request)

			assert.Nil(t, created)
			assert.True(t, utils.IsKind(err, utils.KindValidation), "got %v", err)
			assert.Empty(t, store.transactions)
		})
	}
}

func TestRecordTransaction_StoreFailure(t *testing.T) {
	service := NewLedgerService(&fakeFinanceStore{insertErr: errors.New("disk full")})

	_, err := service.RecordTransaction(context.Background(), &models.RecordTransactionRequest{
		Date:   "2024-03-02",
		Kind:   models.TransactionIncome,
		Amount: decimal.NewFromInt(10),
	})

	assert.True(t, utils.IsKind(err, utils.KindInternal))
}
