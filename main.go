package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tirthyatra/autocom"
	"tirthyatra/config"
	"tirthyatra/db"
	"tirthyatra/drafts"
	"tirthyatra/itinerary"
	"tirthyatra/middleware"
	"tirthyatra/ratelim"
	"tirthyatra/routes"
	"tirthyatra/submit"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

// setupRouter builds the router with every page and API route.
func setupRouter(submissions *submit.Handler, submitLimiter, editLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	routes.RoutesWrapper(router, submissions, submitLimiter, editLimiter)
	return router
}

// openDraftStore uses Redis when configured and reachable, memory otherwise.
func openDraftStore(ctx context.Context, cfg config.Config) (drafts.Store, func()) {
	if cfg.RedisURL == "" {
		log.Println("[drafts] REDIS_URL not set; keeping drafts in memory")
		return drafts.NewMemoryStore(cfg.DraftTTL), func() {}
	}

	opts := &redis.Options{Addr: cfg.RedisURL, Password: cfg.RedisPassword}
	if strings.Contains(cfg.RedisURL, "://") {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("[drafts] bad REDIS_URL: %v; keeping drafts in memory", err)
			return drafts.NewMemoryStore(cfg.DraftTTL), func() {}
		}
		if cfg.RedisPassword != "" {
			parsed.Password = cfg.RedisPassword
		}
		opts = parsed
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[drafts] redis unreachable: %v; keeping drafts in memory", err)
		client.Close()
		return drafts.NewMemoryStore(cfg.DraftTTL), func() {}
	}
	log.Printf("[drafts] storing drafts in redis at %s", opts.Addr)
	return drafts.NewRedisStore(client, cfg.DraftTTL), func() { client.Close() }
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}
	logs := config.SetupLogging(cfg)
	defer logs.Close()

	ctx := context.Background()
	if err := db.Init(ctx, db.Options{
		File:            cfg.ItinerariesFile,
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
	}); err != nil {
		log.Fatalf("❌ %v", err)
	}
	itinerary.SiteURL = cfg.SiteURL
	itinerary.Suggestions = autocom.NewIndex(db.Itineraries.All())

	store, closeStore := openDraftStore(ctx, cfg)
	submissions := submit.NewHandler(store, cfg.MaintainerEmail)

	// initialize rate limiters
	submitLimiter := ratelim.NewRateLimiter(cfg.SubmitRate, config.SubmitBurst)
	editLimiter := ratelim.NewRateLimiter(cfg.EditRate, config.EditBurst)

	router := setupRouter(submissions, submitLimiter, editLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	handler := middleware.Logging(middleware.SecurityHeaders(corsHandler))

	// create HTTP server
	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Closing draft store...")
		closeStore()
	})

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	// initiate graceful shutdown
	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
