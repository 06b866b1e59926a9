package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flamegold-ordering/internal/checkout"
	"flamegold-ordering/internal/domain"
	"flamegold-ordering/internal/session"
)

type quoteRequest struct {
	OrderType domain.OrderType `json:"orderType" binding:"required,oneof=collection delivery"`
}

type quoteResponse struct {
	Subtotal      float64 `json:"subtotal"`
	DeliveryFee   float64 `json:"deliveryFee"`
	Total         float64 `json:"total"`
	EstimatedTime string  `json:"estimatedTime"`
}

// checkoutQuoteHandler prices the live cart for an order type without
// touching it; the summary panel calls this on every order-type switch.
func checkoutQuoteHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		s := sessions.Get(c.Request.Context(), sessionID(c))
		subtotal, fee, total := s.Checkout.Quote(req.OrderType)
		c.JSON(http.StatusOK, quoteResponse{
			Subtotal:      subtotal,
			DeliveryFee:   fee,
			Total:         total,
			EstimatedTime: checkout.EstimatedTime(req.OrderType),
		})
	}
}

// checkoutSubmitHandler validates the draft and submits the order.
// Failures map to the narrowest useful status; the cart survives
// everything except success.
func checkoutSubmitHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft checkout.Draft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		s := sessions.Get(c.Request.Context(), sessionID(c))
		result, err := s.Checkout.Submit(c.Request.Context(), draft)
		if err != nil {
			var ve *checkout.ValidationError
			switch {
			case errors.As(err, &ve):
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			case errors.Is(err, checkout.ErrSubmitInFlight):
				c.JSON(http.StatusConflict, gin.H{"error": "submission already in progress"})
			case errors.Is(err, checkout.ErrCompleted):
				c.JSON(http.StatusConflict, gin.H{"error": "checkout already complete"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "order could not be placed, please try again"})
			}
			return
		}

		// The aggregator is terminal once complete; drop the session state
		// so the next request starts a fresh cart and checkout.
		sessions.Reset(sessionID(c))

		c.JSON(http.StatusCreated, result)
	}
}
