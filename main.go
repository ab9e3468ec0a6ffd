package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shelter-backend/config"
	"shelter-backend/controllers"
	"shelter-backend/jobs"
	"shelter-backend/routes"
	"shelter-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	ledger := services.NewCapacityLedger(db)
	lodgingService := services.NewLodgingService(db, ledger)
	serviceReservationService := services.NewServiceReservationService(db)

	// Initialize controllers
	lodgingController := controllers.NewLodgingController(lodgingService)
	serviceReservationController := controllers.NewServiceReservationController(serviceReservationService)
	hostelController := controllers.NewHostelController(db, lodgingService, serviceReservationService)

	// Background expiry report
	expiryReporter := jobs.NewExpiryReporter(serviceReservationService)
	if err := expiryReporter.Start(); err != nil {
		log.Fatalf("❌ Failed to start expiry reporter: %v", err)
	}
	defer expiryReporter.Stop()

	// Build router
	router := routes.SetupRouter(lodgingController, serviceReservationController, hostelController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
