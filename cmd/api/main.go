package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kimphuquy/silvershop/internal/catalog"
	"github.com/kimphuquy/silvershop/internal/config"
	"github.com/kimphuquy/silvershop/internal/database"
	"github.com/kimphuquy/silvershop/internal/favorites"
	"github.com/kimphuquy/silvershop/internal/handlers"
	"github.com/kimphuquy/silvershop/internal/kvstore"
	"github.com/kimphuquy/silvershop/internal/middleware"
	"github.com/kimphuquy/silvershop/internal/models"
	"github.com/kimphuquy/silvershop/internal/orders"
	"github.com/kimphuquy/silvershop/internal/pricefeed"
	"github.com/kimphuquy/silvershop/internal/updater"
	"github.com/kimphuquy/silvershop/internal/websocket"
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

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.KVDocument{},
		&models.Order{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire up the catalog over the persisted KV store
	kv := kvstore.New(db)
	cat := catalog.NewService(kv)

	// 5. Websocket hub for live product-change notifications
	hub := websocket.NewHub()
	go hub.Run()

	dispatcher := updater.NewDispatcher()
	dispatcher.AddSink(hub.NotifyProductsChanged)
	cat.SetNotifier(dispatcher)

	// 6. Price update engine over the external source
	fetcher := pricefeed.NewFetcher(cfg.Crawler)
	source := pricefeed.NewHTMLSource(fetcher)
	engine := updater.NewEngine(cat, source, cfg.Crawler)
	if err := engine.Start(); err != nil {
		log.Fatalf("Failed to start update engine: %v", err)
	}

	// 7. Order and favorites services
	orderSvc := orders.NewService(db)
	favSvc := favorites.NewService(kv)

	// 8. HTTP router
	router := handlers.NewRouter(cat, engine, orderSvc, favSvc, hub)
	handler := middleware.LoggingMiddleware(middleware.CORSMiddleware(router))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s [env: %s]\n", cfg.Port, cfg.Env)
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

	// Stop the update engine
	engine.Stop()

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
