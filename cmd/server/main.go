package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/cache"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/catalog"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/checkout"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/config"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/email"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/handlers"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/logger"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/middleware"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/orders"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/payment"
	"github.com/Sunday-Binakin/Cyperus-Enterprise-sub001/internal/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, envFile, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ configuration invalide:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !envFile {
		log.Warn("⚠️ Aucun fichier .env trouvé, utilisation des variables d'environnement")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ configuration incomplète", zap.Error(err))
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("❌ arrêt du serveur", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.NewRedisClient(ctx, cache.RedisOptions{Addr: cfg.RedisHost, Password: cfg.RedisPassword})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info("✅ Redis connecté", zap.String("addr", cfg.RedisHost))

	db, err := orders.OpenDB(cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open order database: %w", err)
	}
	defer db.Close()
	log.Info("✅ Base commandes prête", zap.String("dsn", cfg.DBDSN))

	sender, err := newSender(cfg, log)
	if err != nil {
		return err
	}
	mailer := email.NewService(sender, email.Options{
		SalesEmail: cfg.SalesEmail,
		SiteURL:    cfg.FrontendURL,
		Currency:   cfg.Currency,
	}, log.Named("email"))

	gateway, err := newGateway(cfg, log)
	if err != nil {
		return err
	}

	orderService := orders.NewService(orders.NewRepository(db), mailer, log.Named("orders"))
	orchestrator := checkout.New(gateway, orderService, mailer,
		checkout.WithPricing(checkout.Pricing{
			Currency:              cfg.Currency,
			ShippingFee:           cfg.ShippingFee,
			FreeShippingThreshold: cfg.FreeShippingThreshold,
			TaxRate:               cfg.TaxRate,
		}),
		checkout.WithReconciler(cache.NewReconciliationQueue(rdb)),
		checkout.WithLogger(log.Named("checkout")),
	)

	h := handlers.New(handlers.Deps{
		Catalog:   catalog.New(),
		Sessions:  cache.NewSessionStore(rdb, cfg.CartTTL),
		Checkout:  orchestrator,
		Orders:    orderService,
		Payments:  gateway,
		Inquiries: mailer,
		Health: []handlers.Pinger{
			handlers.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
			handlers.PingerFunc(db.PingContext),
		},
		Currency:            cfg.Currency,
		PaystackSecret:      cfg.PaystackSecretKey,
		StripeWebhookSecret: cfg.StripeWebhookSecret,
		AllowedOrigins:      []string{cfg.FrontendURL},
		Logger:              log.Named("http"),
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, h, routes.Options{
		AllowedOrigins:    []string{cfg.FrontendURL},
		Sessions:          middleware.NewSessionStore(cfg.SessionSecret, !cfg.IsDevelopment()),
		SupabaseJWTSecret: cfg.SupabaseJWTSecret,
		RateLimiter:       middleware.NewRateLimiter(rdb, log.Named("ratelimit")),
		Logger:            log.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Serveur Cyperus lancé", zap.String("port", cfg.Port), zap.String("payments", gateway.Provider()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 arrêt en cours")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSender(cfg config.Config, log *zap.Logger) (email.Sender, error) {
	var (
		next email.Sender
		err  error
	)
	switch cfg.EmailProvider {
	case "smtp":
		next, err = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
	default:
		next, err = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, "")
	}
	if err != nil {
		return nil, err
	}
	log.Info("✅ Email initialisé", zap.String("provider", cfg.EmailProvider))
	return email.NewBreakerSender(cfg.EmailProvider, next, log.Named("email")), nil
}

func newGateway(cfg config.Config, log *zap.Logger) (payment.Gateway, error) {
	switch cfg.PaymentProvider {
	case payment.ProviderStripe:
		log.Info("✅ Stripe initialisé")
		return payment.NewStripeGateway(cfg.StripeSecretKey, log.Named("stripe")), nil
	case payment.ProviderPaystack:
		log.Info("✅ Paystack initialisé")
		return payment.NewPaystackClient(cfg.PaystackSecretKey, cfg.PaystackBaseURL, log.Named("paystack")), nil
	}
	return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
}
