package api

import (
	"errors"
	"net/http"

	reqdto "madebuy/internal/handler/dto/request"
	resdto "madebuy/internal/handler/dto/response"
	"madebuy/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartQueries queries.CartQueries
}

func NewCartHandler(cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartQueries: cartQueries,
	}
}

// @Summary Validate cart availability
// @Description Read-only availability check for a shopper's cart. Never creates holds.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateCartRequest true "Cart to validate"
// @Success 200 {object} resdto.CartValidationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /storefront/cart/validate [post]
func (h *CartHandler) ValidateCart(c *gin.Context) {
	var req reqdto.ValidateCartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.cartQueries.ValidateCart(c.Request.Context(), req.TenantID, req.SessionID, req.ToQuery())
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid cart",
			})
		case errors.Is(err, queries.ErrTenantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Tenant not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartValidation(result))
}
