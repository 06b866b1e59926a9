package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"flamegold-ordering/internal/config"
	"flamegold-ordering/internal/db"
	"flamegold-ordering/internal/importer"
	menurepo "flamegold-ordering/internal/repository/menu"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to menu CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, menurepo.NewPostgresWriter(pool, nil))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d menu items in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
