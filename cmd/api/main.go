package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"flamegold-ordering/internal/cart"
	"flamegold-ordering/internal/config"
	"flamegold-ordering/internal/db"
	"flamegold-ordering/internal/httpserver"
	menurepo "flamegold-ordering/internal/repository/menu"
	orderrepo "flamegold-ordering/internal/repository/order"
	"flamegold-ordering/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	menuRepo := menurepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	cartStorage := cart.NewRedisStorage(rdb)
	sessions := session.NewManager(cartStorage, orderRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, rdb, cfg.CORSOrigins, httpserver.Deps{
		Menu:     menuRepo,
		Orders:   orderRepo,
		Sessions: sessions,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
