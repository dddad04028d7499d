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

	"mydukaan/backend/internal/config"
	"mydukaan/backend/internal/httpapi"
	"mydukaan/backend/internal/insight"
	"mydukaan/backend/internal/service"
	"mydukaan/backend/internal/store"
	filestore "mydukaan/backend/internal/store/file"
	pgstore "mydukaan/backend/internal/store/postgres"
	redisstore "mydukaan/backend/internal/store/redis"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	documents, closers := buildStore(cfg)
	insights := buildInsights(ctx, cfg)

	svc, err := service.New(ctx, documents, insights)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}

	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.Passcodes)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("dashboard backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

// buildStore picks the persistence backend. Postgres wins when configured,
// then Redis, then the JSON file default.
func buildStore(cfg config.Config) (store.DocumentStore, []func() error) {
	closers := make([]func() error, 0, 1)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with a fallback store", err)
		}
		closers = append(closers, pg.Close)
		log.Println("store: postgres")
		return pg, closers
	}

	if cfg.RedisAddr != "" {
		rds, err := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis unavailable (%v) and REDIS_ADDR is set; refusing to start with a fallback store", err)
		}
		closers = append(closers, rds.Close)
		log.Println("store: redis")
		return rds, closers
	}

	fs, err := filestore.New(cfg.DataFile)
	if err != nil {
		log.Fatalf("file store init: %v", err)
	}
	log.Printf("store: file (%s)", cfg.DataFile)
	return fs, closers
}

func buildInsights(ctx context.Context, cfg config.Config) insight.Generator {
	if cfg.GeminiAPIKey == "" {
		log.Println("insights: offline (no GEMINI_API_KEY)")
		return insight.Offline{}
	}
	gem, err := insight.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("insights: gemini unavailable (%v), using offline generator", err)
		return insight.Offline{}
	}
	log.Println("insights: gemini")
	return gem
}
