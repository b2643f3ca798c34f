package main

import (
	"context"
	"log"
	"time"

	"frontline-citizen-be/internal/bootstrap"
	"frontline-citizen-be/internal/config"
	"frontline-citizen-be/internal/server"
	"frontline-citizen-be/internal/tracer"
	"frontline-citizen-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; the container falls back to the
	// in-memory case store when no DSN is configured)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Dispatch Service...")
		if err := container.DispatchService.Consume(context.Background()); err != nil {
			log.Printf("Background Dispatch Error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting Case Event Monitor...")
		if err := container.EventMonitorService.Start(context.Background()); err != nil {
			log.Printf("Background Event Monitor Error: %v", err)
		}
	}()

	// Daily digest to the operations inbox; a no-op without SMTP.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := container.AdminService.EmailDailySummary(context.Background()); err != nil {
				log.Printf("Background Digest Error: %v", err)
			}
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
