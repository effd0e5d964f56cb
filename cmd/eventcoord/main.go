// @title eventcoord API
// @version 1.0
// @description Coordinates company events: approval, invitations, RSVPs, staffing and cancellation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"eventcoord/config"
	_ "eventcoord/docs"
	"eventcoord/internal/adapters/auth"
	"eventcoord/internal/adapters/email"
	httpdelivery "eventcoord/internal/delivery/http"
	"eventcoord/internal/metrics"
	"eventcoord/internal/repository/postgres"
	"eventcoord/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("eventcoord stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting eventcoord", "env", cfg.Environment, "port", cfg.Port)

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	db, err := postgres.Open(startCtx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close postgres connection", "err", err)
		}
	}()
	if err := postgres.EnsureSchema(startCtx, db); err != nil {
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(registry)

	coordinator := services.NewEventCoordinator(services.CoordinatorDeps{
		Tx:        postgres.NewTransactor(db),
		Events:    postgres.NewEventRepository(db),
		Customers: postgres.NewCustomerRepository(db),
		Invites:   postgres.NewInviteRepository(db),
		RSVPs:     postgres.NewRSVPRepository(db),
		Staff:     postgres.NewStaffDirectory(db),
		Ledger:    postgres.NewFinanceLedger(db),
		Notifier:  services.NewEmailNotifier(mailer, email.NewTemplateRenderer(), logger),
		Metrics:   recorder,
		Logger:    logger,
	}, cfg.ContextTimeout)

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:         logger,
		Coordinator:    coordinator,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Metrics:        recorder.Handler(),
		AllowedOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case sig := <-stop:
		logger.Info("application stopping", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
