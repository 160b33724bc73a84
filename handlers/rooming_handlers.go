package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fadhlanhapp/umrah-backoffice/models"
	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// GetRoomingList handles GET /rooming/:packageHotelId
func (h *Handlers) GetRoomingList(c *gin.Context) {
	list, err := h.services.RoomingService.GetRoomingList(c.Request.Context(), c.Param("packageHotelId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, list)
}

// CreateRoom handles POST /rooming/:packageHotelId/rooms
func (h *Handlers) CreateRoom(c *gin.Context) {
	var request models.CreateRoomRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		if onlyBookingIDsFailed(err) {
			utils.HandleError(c, utils.NewValidationError("no occupants selected"))
			return
		}
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest+": "+err.Error()))
		return
	}

	list, err := h.services.RoomingService.CreateRoom(c.Request.Context(), c.Param("packageHotelId"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, list)
}

// DeleteRoom handles DELETE /rooming/:packageHotelId/rooms/:roomId
func (h *Handlers) DeleteRoom(c *gin.Context) {
	list, err := h.services.RoomingService.DeleteRoom(c.Request.Context(), c.Param("packageHotelId"), c.Param("roomId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, list)
}

// ToggleSelection handles POST /rooming/:packageHotelId/selection/toggle
func (h *Handlers) ToggleSelection(c *gin.Context) {
	var request models.ToggleSelectionRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest+": "+err.Error()))
		return
	}

	result, err := h.services.RoomingService.ToggleSelection(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

// onlyBookingIDsFailed reports whether the booking selection is the sole binding failure
func onlyBookingIDsFailed(err error) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return false
	}
	for _, fe := range validationErrors {
		if fe.Field() != "BookingIDs" {
			return false
		}
	}
	return true
}
