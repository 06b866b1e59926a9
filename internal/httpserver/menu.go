package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flamegold-ordering/internal/domain"
)

type menuResponse struct {
	Items          []domain.MenuItem                      `json:"items"`
	Customizations map[string][]domain.CustomizationGroup `json:"customizations"`
}

// menuHandler returns the orderable menu and every item's customization
// groups in one payload.
func menuHandler(menu MenuReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		items, err := menu.ListAvailable(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}
		groups, err := menu.GroupsByItem(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}

		if items == nil {
			items = []domain.MenuItem{}
		}
		if groups == nil {
			groups = map[string][]domain.CustomizationGroup{}
		}
		c.JSON(http.StatusOK, menuResponse{Items: items, Customizations: groups})
	}
}
