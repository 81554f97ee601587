package api

import (
	"net/http"

	resdto "madebuy/internal/handler/dto/response"
	"madebuy/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SweepHandler struct {
	sweepCommands commands.SweepCommands
}

func NewSweepHandler(sweepCommands commands.SweepCommands) *SweepHandler {
	return &SweepHandler{
		sweepCommands: sweepCommands,
	}
}

// @Summary Sweep expired reservations
// @Description Release every expired hold across all tenants. Triggered by the
// @Description platform cron; idempotent, so overlapping runs are harmless.
// @Tags jobs
// @Produce json
// @Security SweepSecret
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Router /jobs/reservations/sweep [post]
func (h *SweepHandler) SweepExpired(c *gin.Context) {
	released, err := h.sweepCommands.SweepExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{Released: released})
}
