package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/kedaiflow/omsgo/internal/ai"
	"github.com/kedaiflow/omsgo/internal/config"
	"github.com/kedaiflow/omsgo/internal/database"
	"github.com/kedaiflow/omsgo/internal/handlers"
	"github.com/kedaiflow/omsgo/internal/models"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Event{},
		&models.Message{},
		&models.Product{},
		&models.ProductAlias{},
		&models.CompanyProfile{},
		&models.CodeSequence{},
		&models.RecurringSchedule{},
		&models.Delivery{},
		&models.DeliveryEvent{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Initialize the chat-intake extractor. Missing key degrades the
	// intake routes to 503 instead of failing startup.
	var extractor ai.Extractor
	if cfg.Gemini.APIKey != "" {
		gem, err := ai.NewGeminiExtractor(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️ Intake: extractor init failed: %v", err)
		} else {
			defer gem.Close()
			extractor = gem
			log.Printf("✅ Intake: extractor ready (%s)", cfg.Gemini.Model)
		}
	} else {
		log.Println("⚠️ Intake: GEMINI_API_KEY not set, intake routes disabled")
	}

	// 5. Set up HTTP router with CORS
	router := handlers.NewRouter(db, extractor)
	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (stops embedded instance if running)
	if err := db.Close(); err != nil {
		log.Printf("Database shutdown error: %v", err)
	}

	log.Println("✅ Server stopped")
}
