package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Simplici0/paintpro/internal/config"
	"github.com/Simplici0/paintpro/internal/db"
	"github.com/Simplici0/paintpro/internal/estimates"
	"github.com/Simplici0/paintpro/internal/geocode"
	"github.com/Simplici0/paintpro/internal/mailer"
	"github.com/Simplici0/paintpro/internal/metrics"
	"github.com/Simplici0/paintpro/internal/migrations"
	"github.com/Simplici0/paintpro/internal/rooms"
	"github.com/Simplici0/paintpro/internal/seed"
	"github.com/Simplici0/paintpro/internal/storage"
	"github.com/Simplici0/paintpro/internal/storage/dynamo"
	"github.com/Simplici0/paintpro/internal/storage/sqlite"
	"github.com/Simplici0/paintpro/pkg/logging"
)

const (
	defaultDynamoTable = "paintpro-estimates"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.Setup(cfg.LogLevel)
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, logger); err != nil {
			return err
		}
		stats, err := seed.Run(database)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeded", "inserts", stats.Inserts, "updates", stats.Updates)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	local := sqlite.New(database)
	var estimateStore storage.EstimateStore = local
	if cfg.StoreBackend == "dynamodb" {
		client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return fmt.Errorf("create dynamodb client: %w", err)
		}
		table := cfg.DynamoDBTable
		if table == "" {
			table = defaultDynamoTable
		}
		estimateStore = dynamo.New(client, table)
		logger.Info("estimates stored in dynamodb", "table", table)
	}

	smtpPort, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return fmt.Errorf("parse SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}
	mail := mailer.New(mailer.Config{
		Host:             cfg.SMTPHost,
		Port:             smtpPort,
		Username:         cfg.SMTPUsername,
		Password:         cfg.SMTPPassword,
		From:             cfg.MailFrom,
		FromName:         cfg.MailFromName,
		SandboxRecipient: cfg.MailSandboxRecipient,
	}, logger)

	m := metrics.New()
	srv := &server{
		catalog:   local,
		drafts:    local,
		estimates: estimateStore,
		submit:    estimates.NewService(estimateStore, mail, m, logger),
		geocoder: geocode.New(geocode.Config{
			URL:       cfg.GeocoderURL,
			Region:    cfg.GeocoderRegion,
			UserAgent: cfg.GeocoderUserAgent,
		}, nil, logger),
		metrics: m,
		logger:  logger,
		newID:   rooms.NewID,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr, "env", cfg.Env, "store", cfg.StoreBackend)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
