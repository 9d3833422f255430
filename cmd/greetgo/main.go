package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"greetgo/internal/limiter"
	"greetgo/internal/middleware"
	"greetgo/internal/static"

	"github.com/joho/godotenv"
)

const defaultPort = 10000

// Minimal config via flags/env
type Config struct {
	Port          int
	SiteDir       string
	RPS           float64
	Burst         int
	TrustedHeader string
}

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := loadConfig()
	log.Printf("greetgo starting on :%d", cfg.Port)

	site, err := static.NewHandler(cfg.SiteDir)
	if err != nil {
		log.Fatalf("failed to open site root: %v", err)
	}

	limStore := limiter.NewStore(cfg.RPS, cfg.Burst)
	go limStore.CleanupLoop()

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// The card site
	mux.Handle("/", site)
	log.Printf("Site: / -> %s", cfg.SiteDir)

	// Compose middleware: logging -> rateLimit -> mux
	var handler http.Handler = mux
	handler = limStore.Middleware(cfg.TrustedHeader)(handler)
	handler = middleware.Logging(handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Fatal(srv.ListenAndServe())
}

func loadConfig() Config {
	var cfg Config
	flag.IntVar(&cfg.Port, "port", getEnvInt("PORT", defaultPort), "Port to listen on")
	flag.StringVar(&cfg.SiteDir, "siteDir", getEnv("GREETGO_SITE_DIR", "site"), "Directory holding the card site")
	flag.Float64Var(&cfg.RPS, "rps", getEnvFloat("GREETGO_RPS", 20), "Rate limit: req/s per client IP")
	flag.IntVar(&cfg.Burst, "burst", getEnvInt("GREETGO_BURST", 40), "Rate limit: burst per client IP")
	flag.StringVar(&cfg.TrustedHeader, "trustedHeader", getEnv("GREETGO_TRUSTED_HEADER", ""), "Optional header for real client IP (e.g., X-Real-IP)")
	flag.Parse()
	if cfg.Port < 1 || cfg.Port > 65535 {
		cfg.Port = defaultPort
	}
	return cfg
}

// --- small helpers (local to main to avoid extra package config) ---
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		// Full-string parse: "8080abc" is invalid, not 8080.
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}
func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return x
		}
	}
	return def
}
