package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"urbankicks/internal/catalog"
	"urbankicks/internal/checkout"
	"urbankicks/internal/config"
	"urbankicks/internal/events"
	"urbankicks/internal/http/handlers"
	applog "urbankicks/internal/log"
	"urbankicks/internal/persist"
	"urbankicks/internal/repos"
	"urbankicks/internal/services"
	"urbankicks/web"
)

// openStore picks the key-value backend for persisted orders. The returned
// closer is never nil.
func openStore(cfg config.Config) (persist.KV, func() error, error) {
	switch cfg.StoreBackend {
	case "memory":
		return persist.NewMemoryKV(), func() error { return nil }, nil
	case "bolt":
		kv, err := repos.OpenBolt(cfg.StoreDSN)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	default:
		db, err := repos.OpenDB(cfg.StoreDSN)
		if err != nil {
			return nil, nil, err
		}
		kv := repos.NewKVRepo(db)
		if keys, err := kv.Keys(); err != nil {
			applog.Warn(nil, "store.keys.fail", err, map[string]any{"dsn": cfg.StoreDSN})
		} else {
			applog.Info(nil, "store.open", map[string]any{"backend": "sqlite", "dsn": cfg.StoreDSN, "keys": keys})
		}
		return kv, db.Close, nil
	}
}

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	st := services.NewState(persist.NewGateway(kv, cfg.OrdersKey))
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st.Start(ctx, catalog.SourceFor(cfg.CatalogSource))
	cancel()

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURI != "" {
		p, err := events.DialAMQP(cfg.AMQPURI, cfg.AMQPQueue)
		if err != nil {
			applog.Warn(nil, "events.dial.fail", err, map[string]any{"queue": cfg.AMQPQueue})
		} else {
			pub = p
		}
	}
	defer pub.Close()

	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	deps := handlers.NewDeps(st, cfg, &checkout.Builder{}, pub)

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	app.Use(handlers.CartBadge(deps.Cart))

	handlers.Routes(app, deps)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		applog.Info(nil, "server.shutdown", nil)
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
