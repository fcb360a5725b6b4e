package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address            string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	DatabaseConnection string        `env:"DATABASE_URI"`
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"dontexposethis"`
	JWTTTL             time.Duration `env:"JWT_TTL" envDefault:"24h"`
	PaymentProviderURL string        `env:"PAYMENT_PROVIDER_URL" envDefault:"https://pay.inkjetproguide.example"`
	PaymentSecretKey   string        `env:"PAYMENT_SECRET_KEY"`
	EnforceStock       bool          `env:"ENFORCE_STOCK" envDefault:"false"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ENV JWT_SECRET must be set")
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	databaseConnection := flag.String("d", cfg.DatabaseConnection, "Database connection string")
	jwtTTL := flag.Duration("t", cfg.JWTTTL, "TTL for JWT token(e.g. 24h; 30m )")
	paymentURL := flag.String("p", cfg.PaymentProviderURL, "Payment provider base URL")
	enforceStock := flag.Bool("s", cfg.EnforceStock, "Reject orders containing out-of-stock products")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.DatabaseConnection = *databaseConnection
	cfg.JWTTTL = *jwtTTL
	cfg.PaymentProviderURL = *paymentURL
	cfg.EnforceStock = *enforceStock

	return cfg, nil
}
