package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/umrah-backoffice/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	LedgerService  *services.LedgerService
	ExcelService   *services.ExcelService
	PaymentService *services.PaymentService
	RoomingService *services.RoomingService
}

// Handlers serves the REST API on top of the services
type Handlers struct {
	services *HandlerServices
}

// NewHandlers creates the handlers for the given services
func NewHandlers(services *HandlerServices) *Handlers {
	return &Handlers{services: services}
}

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
