package routes

import (
	"github.com/fadhlanhapp/umrah-backoffice/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, h *handlers.Handlers) {
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		// Cash book (Buku Kas) endpoints
		v1.GET("/finance", h.GetLedger)
		v1.POST("/finance", h.RecordTransaction)
		v1.GET("/finance/accounts", h.GetAccountSummaries)
		v1.GET("/finance/export", h.ExportLedger)

		// Pilgrim payment endpoints
		v1.GET("/jamaah/:id/payments", h.ListPayments)
		v1.POST("/jamaah/:id/payments", h.AddPayment)
		v1.PUT("/jamaah/:id/payments/:paymentId", h.UpdatePayment)
		v1.DELETE("/jamaah/:id/payments/:paymentId", h.DeletePayment)
		v1.POST("/jamaah/:id/payments/:paymentId/verify", h.VerifyPayment)
		v1.POST("/jamaah/:id/payments/:paymentId/reject", h.RejectPayment)

		// Rooming list endpoints
		v1.GET("/rooming/:packageHotelId", h.GetRoomingList)
		v1.POST("/rooming/:packageHotelId/rooms", h.CreateRoom)
		v1.DELETE("/rooming/:packageHotelId/rooms/:roomId", h.DeleteRoom)
		v1.POST("/rooming/:packageHotelId/selection/toggle", h.ToggleSelection)
	}
}
