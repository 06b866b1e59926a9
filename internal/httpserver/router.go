package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// buildRouter wires routes for the ordering API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, corsOrigins []string, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = corsOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowOrigins = nil
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, rdb))

	api := router.Group("/api")
	api.Use(sessionMiddleware())

	api.GET("/menu", menuHandler(deps.Menu))

	api.GET("/cart", getCartHandler(deps.Sessions))
	api.POST("/cart/lines", addCartLineHandler(deps.Menu, deps.Sessions))
	api.PATCH("/cart/lines/:lineID", updateCartLineHandler(deps.Sessions))
	api.DELETE("/cart/lines/:lineID", removeCartLineHandler(deps.Sessions))
	api.DELETE("/cart", clearCartHandler(deps.Sessions))
	api.PUT("/cart/visibility", cartVisibilityHandler(deps.Sessions))

	api.POST("/checkout/quote", checkoutQuoteHandler(deps.Sessions))
	api.POST("/checkout", checkoutSubmitHandler(deps.Sessions))

	api.GET("/orders/:orderID", getOrderHandler(deps.Orders))

	return router
}
