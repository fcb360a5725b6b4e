package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/catalog"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/checkout"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/logger"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/order"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/payment"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/router"
	storage "github.com/developeragency5/InkjetProGuide-sub002/internal/storage/postgres"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/user"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := storage.NewPostgresStorage(cfg.DatabaseConnection)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres storage: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	provider := payment.NewFromConfig(httpClient, cfg.PaymentProviderURL, cfg.PaymentSecretKey)
	if !provider.Available() {
		log.Println("No payment provider key configured, card payments disabled")
	}

	userSvc := user.NewService(store, []byte(cfg.JWTSecret), cfg.JWTTTL)
	userHandler := user.NewHandler(userSvc)

	catalogSvc := catalog.NewService(store)
	catalogHandler := catalog.NewHandler(catalogSvc)

	cartSvc := cart.NewService(store, store)
	cartHandler := cart.NewHandler(cartSvc)

	orderSvc := order.NewService(store, cartSvc, cfg.EnforceStock)
	orderHandler := order.NewHandler(orderSvc)

	checkoutSvc := checkout.NewService(checkout.NewStore(), cartSvc, orderSvc, provider)
	checkoutHandler := checkout.NewHandler(checkoutSvc)

	r := router.NewRouter(userHandler, catalogHandler, cartHandler, checkoutHandler, orderHandler, []byte(cfg.JWTSecret), store)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
