// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bicycle-odyssey/config"
	"bicycle-odyssey/controllers"
	"bicycle-odyssey/middleware"
	"bicycle-odyssey/payment"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/routes"
	"bicycle-odyssey/store"
	"bicycle-odyssey/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, dotenv, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.NewLogger("bicycle-odyssey", cfg.AppEnv, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	if !dotenv {
		logger.Info("No .env file found. Proceeding with environment variables.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the document store
	var db store.Database
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store, data is lost on exit")
		db = store.NewMemoryDatabase()
	default:
		client, err := utils.ConnectDB(ctx, cfg.MongoURI, cfg.DBTimeout)
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Error("disconnect mongodb", zap.Error(err))
			}
		}()
		db = store.NewMongoDatabase(client.Database(cfg.MongoDB), cfg.DBTimeout)
	}

	// Initialize adapters
	parts := repository.NewPartRepository(db)
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	reviews := repository.NewReviewRepository(db)
	payments := repository.NewPaymentRepository(db)

	var processor payment.Processor
	if cfg.StripeKey != "" {
		processor = payment.NewStripeProcessor(cfg.StripeKey)
	} else {
		logger.Warn("SECRET_STRIP not set, payment intents are disabled")
	}
	var notifier payment.Notifier
	if es := utils.NewEmailService(cfg.SendGridAPIKey, cfg.EmailSender); es != nil {
		notifier = es
	}
	bridge := payment.NewBridge(processor, orders, payments, notifier)

	tokens := utils.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL)
	guard := middleware.NewGuard(tokens, users)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		Parts:    controllers.NewPartController(parts),
		Orders:   controllers.NewOrderController(orders, bridge, cfg.AllowUnfilteredListing),
		Payments: controllers.NewPaymentController(bridge),
		Profiles: controllers.NewProfileController(profiles, cfg.AllowUnfilteredListing),
		Reviews:  controllers.NewReviewController(reviews),
		Users:    controllers.NewUserController(users, guard, tokens),
	}, guard)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.Use(middleware.NewMetrics(prometheus.DefaultRegisterer).Middleware)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(middleware.RequestLogger(logger)(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bicycle odyssey app listening", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
