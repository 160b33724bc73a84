package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// ListPayments handles GET /jamaah/:id/payments
func (h *Handlers) ListPayments(c *gin.Context) {
	result, err := h.services.PaymentService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

// AddPayment handles POST /jamaah/:id/payments
func (h *Handlers) AddPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest+": "+err.Error()))
		return
	}

	payment, err := h.services.PaymentService.AddPayment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, payment)
}

// UpdatePayment handles PUT /jamaah/:id/payments/:paymentId
func (h *Handlers) UpdatePayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest+": "+err.Error()))
		return
	}

	payment, err := h.services.PaymentService.UpdatePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, payment)
}

// VerifyPayment handles POST /jamaah/:id/payments/:paymentId/verify
func (h *Handlers) VerifyPayment(c *gin.Context) {
	h.transitionPayment(c, h.services.PaymentService.VerifyPayment)
}

// RejectPayment handles POST /jamaah/:id/payments/:paymentId/reject
func (h *Handlers) RejectPayment(c *gin.Context) {
	h.transitionPayment(c, h.services.PaymentService.RejectPayment)
}

// DeletePayment handles DELETE /jamaah/:id/payments/:paymentId
func (h *Handlers) DeletePayment(c *gin.Context) {
	if err := h.services.PaymentService.DeletePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId")); err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}

type paymentTransition func(ctx context.Context, jamaahID, paymentID string) (*models.Payment, error)

func (h *Handlers) transitionPayment(c *gin.Context, apply paymentTransition) {
	payment, err := apply(c.Request.Context(), c.Param("id"), c.Param("paymentId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, payment)
}
