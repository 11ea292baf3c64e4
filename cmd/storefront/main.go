package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/postgres"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/session"
	"github.com/ariefcatur/go-storefront/internal/shop"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := redisx.Ping(ctx, rdb); err != nil {
		log.Fatalf("%v", err)
	}
	sessions := session.NewManager([]byte(cfg.SessionSecret),
		session.NewRedisStore(rdb, redisx.TTLSession), redisx.TTLSession)

	// Kafka producer, optional
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrderPlaced, 1024)
		prod.Start(ctx)
	} else {
		log.Println("KAFKA_BROKERS empty, order events disabled")
	}

	products := &shop.ProductRepo{DB: db}
	cart := &shop.Cart{Products: products}
	checkout := &shop.Checkout{
		Cart:     cart,
		Orders:   &shop.OrderRepo{DB: db},
		Products: products,
		Producer: cfg.ServiceName,
	}
	if prod != nil {
		checkout.Events = prod
	}
	h := httpx.NewHandler(
		&shop.Catalog{Products: products},
		cart,
		checkout,
		&shop.Auth{
			Users: &shop.UserRepo{DB: db},
			Admin: shop.StaticAdmin{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		},
		&shop.Admin{Products: products, Stats: &shop.StatsRepo{DB: db}},
		sessions,
	)
	router := httpx.NewRouter(h, sessions.Middleware)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if prod != nil {
		// late publishes from handlers still running are dropped, not panicked on
		prod.Close()
		prod.WaitClosed()
	}
	cancel()
}
