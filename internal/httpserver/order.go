package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flamegold-ordering/internal/domain"
)

// getOrderHandler returns one stored order; the confirmation page polls
// this after a successful checkout.
func getOrderHandler(orders OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if uuid.Validate(id) != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		order, err := orders.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order unavailable"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
