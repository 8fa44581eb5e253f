package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	CatalogSource     string
	StoreBackend      string // sqlite | bolt | memory
	StoreDSN          string
	OrdersKey         string
	LogFile           string
	AdminUser         string
	AdminPasswordHash string
	AMQPURI           string
	AMQPQueue         string
	WarehouseWorkers  int
}

func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", "sqlite"))
	switch backend {
	case "sqlite", "bolt", "memory":
	default:
		log.Printf("[config] unknown STORE_BACKEND=%q, using sqlite", backend)
		backend = "sqlite"
	}
	dsn := getEnv("STORE_DSN", "")
	if dsn == "" {
		dsn = "urbankicks.db"
		if backend == "bolt" {
			dsn = "urbankicks.bolt"
		}
	}

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		CatalogSource:     getEnv("CATALOG_SOURCE", "./data.json"),
		StoreBackend:      backend,
		StoreDSN:          dsn,
		OrdersKey:         getEnv("ORDERS_KEY", "urbankicks_orders"),
		LogFile:           getEnv("LOG_FILE", ""),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AMQPURI:           getEnv("AMQP_URI", ""),
		AMQPQueue:         getEnv("AMQP_QUEUE", "orders"),
		WarehouseWorkers:  getIntEnv("WAREHOUSE_WORKERS", 4),
	}
	log.Printf("[config] PORT=%s CATALOG_SOURCE=%s STORE_BACKEND=%s STORE_DSN=%s LOG_FILE=%s ADMIN=%t AMQP=%t",
		cfg.Port, cfg.CatalogSource, cfg.StoreBackend, cfg.StoreDSN, cfg.LogFile,
		cfg.AdminPasswordHash != "", cfg.AMQPURI != "")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
