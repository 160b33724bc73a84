package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

const ledgerSheet = "Buku Kas"

var ledgerHeaders = []string{"Tanggal", "Keterangan", "Akun", "Debit", "Kredit", "Saldo"}

// ExcelService handles ledger spreadsheet export
type ExcelService struct {
	ledgerService *LedgerService
}

// NewExcelService creates a new Excel service
func NewExcelService(ledgerService *LedgerService) *ExcelService {
	return &ExcelService{ledgerService: ledgerService}
}

// ExportLedger generates the Buku Kas workbook for an account filter and its file name
func (s *ExcelService) ExportLedger(ctx context.Context, accountFilter string) (*excelize.File, string, error) {
	view, err := s.ledgerService.GetLedger(ctx, accountFilter)
	if err != nil {
		return nil, "", err
	}

	f, err := s.BuildLedgerWorkbook(view)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to build ledger workbook")
		return nil, "", utils.NewInternalError(utils.ErrFailedToExport)
	}

	account := view.AccountFilter
	if account == "" {
		account = utils.AccountFilterAll
	}
	filename := utils.CleanFileName(fmt.Sprintf("buku kas %s %s.xlsx", account, time.Now().Format(utils.DateLayout)))

	return f, filename, nil
}

// BuildLedgerWorkbook writes a ledger view into a new workbook, newest row first
func (s *ExcelService) BuildLedgerWorkbook(view *models.LedgerView) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ledgerSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	f.SetCellStyle(ledgerSheet, "A1", "F1", headerStyle)

	row := 2
	for _, entry := range view.Rows {
		account := ""
		if entry.AccountID != nil {
			account = *entry.AccountID
		}

		values := []interface{}{
			entry.Date.Format(utils.DateLayout),
			entry.Description,
			account,
			entry.Debit.InexactFloat64(),
			entry.Credit.InexactFloat64(),
			entry.RunningBalance.InexactFloat64(),
		}
		if err := f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	totals := []interface{}{
		"Total", "", "",
		view.TotalDebit.InexactFloat64(),
		view.TotalCredit.InexactFloat64(),
		view.EndingBalance.InexactFloat64(),
	}
	if err := f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}
	f.SetCellStyle(ledgerSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), headerStyle)

	f.SetColWidth(ledgerSheet, "A", "A", 12)
	f.SetColWidth(ledgerSheet, "B", "B", 40)
	f.SetColWidth(ledgerSheet, "C", "F", 16)

	return f, nil
}
