package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "madebuy/internal/handler/dto/request"
	resdto "madebuy/internal/handler/dto/response"
	"madebuy/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
}

func NewReservationHandler(reservationCommands commands.ReservationCommands) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
	}
}

// @Summary Reserve stock for checkout
// @Description Atomically hold stock for every cart line or none of them.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Lines to reserve"
// @Success 201 {object} resdto.ReserveResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.InsufficientStockResponse
// @Router /internal/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.reservationCommands.Reserve(c.Request.Context(), req.TenantID, req.SessionID, req.ToCommand())
	if err != nil {
		var insufficient *commands.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			c.JSON(http.StatusConflict, resdto.FromInsufficientStock(insufficient))
		case errors.Is(err, commands.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid reservation request",
			})
		case errors.Is(err, commands.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Tenant not found",
			})
		case errors.Is(err, commands.ErrPieceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Piece not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReserveResult(result))
}

// @Summary Consume a reservation
// @Description Mark a hold as converted into a finalized order. Safe to retry.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.FinalizeReservationRequest true "Tenant scope"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /internal/reservations/{id}/consume [post]
func (h *ReservationHandler) ConsumeReservation(c *gin.Context) {
	h.finalize(c, h.reservationCommands.Consume)
}

// @Summary Release a reservation
// @Description Reclaim a hold early (checkout abandoned or payment failed). Safe to retry.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.FinalizeReservationRequest true "Tenant scope"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /internal/reservations/{id}/release [post]
func (h *ReservationHandler) ReleaseReservation(c *gin.Context) {
	h.finalize(c, h.reservationCommands.Release)
}

func (h *ReservationHandler) finalize(c *gin.Context, op func(ctx context.Context, tenantID, reservationID uuid.UUID) error) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return
	}

	var req reqdto.FinalizeReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := op(c.Request.Context(), req.TenantID, reservationID); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request",
			})
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
