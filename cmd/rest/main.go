package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"knowledge-assistant-be/internal/bootstrap"
	"knowledge-assistant-be/internal/config"
	"knowledge-assistant-be/internal/server"
	"knowledge-assistant-be/internal/tracer"
	"knowledge-assistant-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.App.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is empty, every bearer token will be rejected with 401")
	}

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Telemetry)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database (optional: without it everything lives in memory)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 5. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start audit consumer: %v", err)
	}

	hydrateCtx, hydrateCancel := context.WithTimeout(ctx, time.Minute)
	if _, err := container.KnowledgeService.HydrateIndex(hydrateCtx); err != nil {
		log.Printf("[WARN] Knowledge index hydration failed: %v", err)
	}
	hydrateCancel()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
