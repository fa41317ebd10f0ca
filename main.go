package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gobalance/adapters/jsonfile"
	"gobalance/adapters/postgres"
	"gobalance/app"
	"gobalance/internal/config"
	"gobalance/ui"
)

func main() {
	// Load .env if present; real environment wins.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	var archive *postgres.ReportRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		archive = postgres.NewReportRepository(db)
		if err := archive.Migrate(context.Background()); err != nil {
			log.Fatalf("failed to migrate report archive: %v", err)
		}
		log.Println("report archive enabled")
	} else {
		log.Println("DATABASE_URL not set, report archive disabled")
	}

	service := app.NewReportService()
	loader := jsonfile.NewLoader(cfg.Results.Dir)

	server := ui.NewServer(service, loader, archive, cfg.Database.HistoryLimit)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
