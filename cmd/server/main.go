package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/ors"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/registry"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres/Redis caches, ORS) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	store, err := openCacheStore()
	if err != nil {
		log.Fatal(err)
	}
	defer store.db.Close()

	client, err := ors.NewClient(orsKey)
	if err != nil {
		log.Fatal(err)
	}

	// ORS adapters use persistent caches to avoid repeated geocode/matrix calls.
	geocoder := ors.NewGeocoder(client, store.geocodeCache)
	provider := ors.NewMatrixProvider(client, store.matrixCache, geocoder)

	reg := registry.New()
	router := api.NewRouter(reg, geocoder, provider)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

type cacheStore struct {
	db           *sql.DB
	matrixCache  ports.MatrixCache
	geocodeCache ports.GeocodeCache
}

// openCacheStore selects the cache backends from the environment:
// Postgres when DATABASE_URL is set (schema managed by dbtool), a local
// SQLite file otherwise, and a Redis geocode cache on top when REDIS_URL
// is set.
func openCacheStore() (*cacheStore, error) {
	store := &cacheStore{}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, err
		}
		store.db = pg
		store.matrixCache = cache.NewPGMatrixCache(pg)
		store.geocodeCache = cache.NewPGGeocodeCache(pg)
	} else {
		dbPath := getEnv("DB_PATH", "data/app.db")
		lite, err := db.OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		if err := cache.InitSchema(lite); err != nil {
			lite.Close()
			return nil, fmt.Errorf("init sqlite cache schema: %w", err)
		}
		store.db = lite
		store.matrixCache = cache.NewSqliteMatrixCache(lite)
		store.geocodeCache = cache.NewSqliteGeocodeCache(lite)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			store.db.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		store.geocodeCache = cache.NewRedisGeocodeCache(redis.NewClient(opts), 24*time.Hour)
	}

	return store, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
