package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/account"
	"github.com/Sehnya/photo-web-demo/internal/booking"
	"github.com/Sehnya/photo-web-demo/internal/cart"
	"github.com/Sehnya/photo-web-demo/internal/checkout"
	"github.com/Sehnya/photo-web-demo/internal/config"
	"github.com/Sehnya/photo-web-demo/internal/email"
	"github.com/Sehnya/photo-web-demo/internal/events"
	h "github.com/Sehnya/photo-web-demo/internal/http"
	"github.com/Sehnya/photo-web-demo/internal/payments"
	"github.com/Sehnya/photo-web-demo/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to set up storage: %v", err)
	}
	defer cleanup()
	log.Printf("storage backend: %s", cfg.StorageBackend)

	links := payments.Links{PerPackage: cfg.PaymentLinks, Fallback: cfg.PaymentLinkFallback}
	var prober h.LinkProber
	if links.Enabled() {
		prober = payments.NewProber()
	} else {
		log.Println("no payment links configured; payment is disabled")
	}

	sender := email.ConsoleSender{}

	var bookingPub booking.Publisher
	var checkoutPub checkout.Publisher
	var consumer *events.ConfirmationConsumer
	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewPublisher(cfg.KafkaBrokers...)
		defer publisher.Close()
		bookingPub = publisher
		checkoutPub = publisher

		consumer = events.NewConfirmationConsumer(sender, cfg.KafkaBrokers...)
		log.Printf("events enabled, brokers: %v", cfg.KafkaBrokers)
	}

	carts := cart.NewService(store)
	checkouts := checkout.NewService(store, checkoutPub)
	bookings := booking.NewService(store, sender, bookingPub)
	accounts := account.NewService(store)

	router := h.NewRouter(h.RouterConfig{
		Cart:           h.NewCartHandler(carts),
		Catalog:        h.NewCatalogHandler(links, prober),
		Checkout:       h.NewCheckoutHandler(carts, checkouts, links),
		Booking:        h.NewBookingHandler(bookings),
		Account:        h.NewAccountHandler(accounts),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	consumerCtx, cancelConsumer := context.WithCancel(ctx)
	defer cancelConsumer()
	if consumer != nil {
		go consumer.Run(consumerCtx)
		defer consumer.Close()
	}

	go func() {
		log.Printf("studio server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func buildStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemoryStore(), noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, err
		}
		log.Printf("connected to redis at %s", cfg.RedisAddr)
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("connected to mongodb at %s", cfg.MongoURI)
		return storage.NewMongoStore(db), func() { db.Client().Disconnect(ctx) }, nil

	case "postgres":
		cred := &storage.Credentials{
			Host:              cfg.PostgresHost,
			Port:              cfg.PostgresPort,
			User:              cfg.PostgresUser,
			Password:          cfg.PostgresPassword,
			DBName:            cfg.PostgresDBName,
			MigrationsDirPath: cfg.MigrationsPath,
		}
		store, err := storage.NewPostgresStore(cred)
		if err != nil {
			return nil, noop, err
		}
		if err := store.RunMigrations(cred); err != nil {
			store.Close()
			return nil, noop, err
		}
		log.Printf("connected to postgres at %s:%d", cfg.PostgresHost, cfg.PostgresPort)
		return store, func() { store.Close() }, nil

	default:
		return nil, noop, errors.New("unknown STORAGE_BACKEND: " + cfg.StorageBackend)
	}
}
