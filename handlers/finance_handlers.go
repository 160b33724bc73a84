package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// GetLedger handles GET /finance?account_id=
func (h *Handlers) GetLedger(c *gin.Context) {
	view, err := h.services.LedgerService.GetLedger(c.Request.Context(), c.Query("account_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, view)
}

// RecordTransaction handles POST /finance
func (h *Handlers) RecordTransaction(c *gin.Context) {
	var request models.RecordTransactionRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest+": "+err.Error()))
		return
	}

	tx, err := h.services.LedgerService.RecordTransaction(c.Request.Context(), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, tx)
}

// GetAccountSummaries handles GET /finance/accounts
func (h *Handlers) GetAccountSummaries(c *gin.Context) {
	summaries, err := h.services.LedgerService.GetAccountSummaries(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, summaries)
}

// ExportLedger handles GET /finance/export?account_id=
func (h *Handlers) ExportLedger(c *gin.Context) {
	excelFile, filename, err := h.services.ExcelService.ExportLedger(c.Request.Context(), c.Query("account_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer excelFile.Close()

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	// Write Excel file to response
	if err := excelFile.Write(c.Writer); err != nil {
		utils.Logger.WithError(err).Error("Failed to write ledger workbook")
		c.Status(http.StatusInternalServerError)
		return
	}
}
