package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flamegold-ordering/internal/customizer"
	"flamegold-ordering/internal/domain"
	"flamegold-ordering/internal/session"
)

type cartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	Subtotal  float64           `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
	Open      bool              `json:"isOpen"`
}

type selectionRequest struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

type addLineRequest struct {
	MenuItemID          string                      `json:"menuItemId" binding:"required"`
	Quantity            int                         `json:"quantity"`
	Selections          map[string]selectionRequest `json:"selections"`
	SpecialInstructions string                      `json:"specialInstructions"`
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

type visibilityRequest struct {
	Open bool `json:"open"`
}

func cartView(s *session.Session) cartResponse {
	lines := s.Cart.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		Lines:     lines,
		Subtotal:  s.Cart.Subtotal(),
		ItemCount: s.Cart.ItemCount(),
		Open:      s.Cart.Visible(),
	}
}

func getCartHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Get(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, cartView(s))
	}
}

// addCartLineHandler turns one customization session into a cart line:
// it replays the submitted choices through a selector for the item's
// groups, then commits and prices them.
func addCartLineHandler(menu MenuReader, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		ctx := c.Request.Context()
		item, err := menu.GetItem(ctx, req.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}
		if !item.Available {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUnavailable.Error()})
			return
		}

		groups, err := menu.GroupsForItem(ctx, item.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}

		sel := customizer.New(*item, groups)
		sel.SetQuantity(req.Quantity)
		sel.SetInstructions(req.SpecialInstructions)
		for groupID, choice := range req.Selections {
			if len(choice.Values) > 0 {
				for _, opt := range choice.Values {
					if err := sel.Toggle(groupID, opt, true); err != nil {
						c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
				}
				continue
			}
			if choice.Value != "" {
				if err := sel.Choose(groupID, choice.Value); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
		}

		customizations, err := sel.Commit()
		if err != nil {
			if errors.Is(err, customizer.ErrIncomplete) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "required choices missing",
					"missing": sel.Missing(),
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s := sessions.Get(ctx, sessionID(c))
		line, err := s.Cart.Add(ctx, *item, sel.Quantity(), customizations)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"line": line, "cart": cartView(s)})
	}
}

func updateCartLineHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		s := sessions.Get(c.Request.Context(), sessionID(c))
		s.Cart.UpdateQuantity(c.Request.Context(), c.Param("lineID"), req.Quantity)
		c.JSON(http.StatusOK, cartView(s))
	}
}

func removeCartLineHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Get(c.Request.Context(), sessionID(c))
		s.Cart.Remove(c.Request.Context(), c.Param("lineID"))
		c.JSON(http.StatusOK, cartView(s))
	}
}

func clearCartHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Get(c.Request.Context(), sessionID(c))
		s.Cart.Clear(c.Request.Context())
		c.JSON(http.StatusOK, cartView(s))
	}
}

func cartVisibilityHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req visibilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		s := sessions.Get(c.Request.Context(), sessionID(c))
		s.Cart.SetVisible(req.Open)
		c.JSON(http.StatusOK, cartView(s))
	}
}
