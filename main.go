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

	"flexitrip-backend/config"
	"flexitrip-backend/controllers"
	"flexitrip-backend/routes"
	"flexitrip-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// The AI agent degrades to sample plans without a key, so missing
	// is a warning, not a fatal.
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set; trip plans and chat will use fallback responses")
	} else {
		log.Println("✅ GEMINI_API_KEY detected.")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	advisoryService := services.NewAdvisoryService()
	aiService := services.NewAIService(services.NewGeminiClient())
	analyticsService := services.NewAnalyticsService(db)
	tripService := services.NewTripService(db, analyticsService)
	bookingService := services.NewBookingService(advisoryService)
	mapsService := services.NewMapsService(db)
	chatService := services.NewChatService(db)
	plannerService := services.NewPlannerService(aiService, tripService, bookingService, mapsService, analyticsService)

	// Initialize controllers
	plannerController := controllers.NewPlannerController(plannerService)
	tripController := controllers.NewTripController(tripService)
	bookingController := controllers.NewBookingController(bookingService, plannerService)
	chatController := controllers.NewChatController(aiService, chatService)
	dashboardController := controllers.NewDashboardController(analyticsService, mapsService)
	advisoryController := controllers.NewAdvisoryController(advisoryService)

	// Build router
	router := routes.SetupRouter(plannerController, tripController, bookingController, chatController, dashboardController, advisoryController)

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

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
