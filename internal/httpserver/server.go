package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"flamegold-ordering/internal/domain"
	"flamegold-ordering/internal/session"
)

// MenuReader is the slice of the menu repository the handlers need.
type MenuReader interface {
	ListAvailable(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
	GroupsByItem(ctx context.Context) (map[string][]domain.CustomizationGroup, error)
	GroupsForItem(ctx context.Context, itemID string) ([]domain.CustomizationGroup, error)
}

// OrderReader is the slice of the order repository the confirmation
// endpoint needs.
type OrderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// Deps carries the collaborators the routes are built from.
type Deps struct {
	Menu     MenuReader
	Orders   OrderReader
	Sessions *session.Manager
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the ordering routes wired.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, corsOrigins []string, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, rdb, corsOrigins, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "redis not reachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
