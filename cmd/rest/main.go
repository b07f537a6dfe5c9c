package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trip-planner-be/internal/bootstrap"
	"trip-planner-be/internal/config"
	"trip-planner-be/internal/server"
	"trip-planner-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracer reads OTEL_* through cfg, so it must follow config.Load
	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, cfg.App.Environment)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, cfg)
	defer container.Close()

	// 3. Start Background Services
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Background Consumer Error: %v", err)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
