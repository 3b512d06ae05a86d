package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	Env         string
	BaseURL     string
	FrontendURL string

	SessionSecret     string
	SupabaseJWTSecret string

	RedisHost     string
	RedisPassword string
	CartTTL       time.Duration

	DBDSN string

	PaymentProvider     string
	PaystackSecretKey   string
	PaystackBaseURL     string
	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string

	EmailProvider string
	ResendAPIKey  string
	EmailFrom     string
	SalesEmail    string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string

	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

// Load reads .env when present, then the process environment.
// The returned bool reports whether a .env file was found.
func Load() (Config, bool, error) {
	envFile := godotenv.Load(".env") == nil

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		Env:         getenv("APP_ENV", "production"),
		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),

		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),

		RedisHost:     getenv("REDIS_HOST", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DBDSN: getenv("DB_DSN", "cyperus.db"),

		PaymentProvider:     strings.ToLower(getenv("PAYMENT_PROVIDER", "paystack")),
		PaystackSecretKey:   os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:     getenv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            strings.ToUpper(getenv("CURRENCY", "NGN")),

		EmailProvider: strings.ToLower(getenv("EMAIL_PROVIDER", "resend")),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		EmailFrom:     getenv("EMAIL_FROM", "Cyperus Enterprise <orders@cyperusenterprise.com>"),
		SalesEmail:    os.Getenv("SALES_EMAIL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
	}

	var err error
	if cfg.SMTPPort, err = strconv.Atoi(getenv("SMTP_PORT", "587")); err != nil {
		return cfg, envFile, fmt.Errorf("SMTP_PORT: %w", err)
	}
	if cfg.CartTTL, err = time.ParseDuration(getenv("CART_TTL", "720h")); err != nil {
		return cfg, envFile, fmt.Errorf("CART_TTL: %w", err)
	}
	if cfg.ShippingFee, err = decimal.NewFromString(getenv("SHIPPING_FEE", "0")); err != nil {
		return cfg, envFile, fmt.Errorf("SHIPPING_FEE: %w", err)
	}
	if cfg.FreeShippingThreshold, err = decimal.NewFromString(getenv("FREE_SHIPPING_THRESHOLD", "0")); err != nil {
		return cfg, envFile, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err)
	}
	if cfg.TaxRate, err = decimal.NewFromString(getenv("TAX_RATE", "0")); err != nil {
		return cfg, envFile, fmt.Errorf("TAX_RATE: %w", err)
	}
	return cfg, envFile, nil
}

// Validate reports every missing setting for the selected providers.
func (c Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}

	switch c.PaymentProvider {
	case "paystack":
		if c.PaystackSecretKey == "" {
			errs = append(errs, errors.New("PAYSTACK_SECRET_KEY is required for PAYMENT_PROVIDER=paystack"))
		}
	case "stripe":
		if c.StripeSecretKey == "" {
			errs = append(errs, errors.New("STRIPE_SECRET_KEY is required for PAYMENT_PROVIDER=stripe"))
		}
		// without it every Stripe webhook is rejected
		if c.StripeWebhookSecret == "" {
			errs = append(errs, errors.New("STRIPE_WEBHOOK_SECRET is required for PAYMENT_PROVIDER=stripe"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider))
	}

	switch c.EmailProvider {
	case "resend":
		if c.ResendAPIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required for EMAIL_PROVIDER=resend"))
		}
	case "smtp":
		if c.SMTPHost == "" || c.SMTPUsername == "" {
			errs = append(errs, errors.New("SMTP_HOST and SMTP_USERNAME are required for EMAIL_PROVIDER=smtp"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown EMAIL_PROVIDER %q", c.EmailProvider))
	}

	if c.TaxRate.IsNegative() || c.ShippingFee.IsNegative() {
		errs = append(errs, errors.New("SHIPPING_FEE and TAX_RATE must not be negative"))
	}
	return errors.Join(errs...)
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
