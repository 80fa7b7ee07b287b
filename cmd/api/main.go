package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lkzdsb-lab/postsvc/internal/config"
	"github.com/lkzdsb-lab/postsvc/internal/handler"
	"github.com/lkzdsb-lab/postsvc/internal/pkg"
	"github.com/lkzdsb-lab/postsvc/internal/repository/database"
	"github.com/lkzdsb-lab/postsvc/internal/router"
	"github.com/lkzdsb-lab/postsvc/internal/service"
)

const shutdownGrace = 5 * time.Second

func main() {
	cfg := config.Load()

	var addr string
	root := &cobra.Command{
		Use:           "api",
		Short:         "Serve the posts HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = cfg.Addr()
			}
			return run(cmd.Context(), cfg, addr)
		},
	}
	root.Flags().StringVar(&addr, "addr", "", "listen address (default \":$PORT\")")
	root.Flags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "database url: sqlite:///path, mysql://..., postgres://...")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger := newLogger(cfg)
		logger.Fatal().Err(err).Msg("api exited")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(cfg.Level()).With().Timestamp().Logger()
}

func run(ctx context.Context, cfg *config.Config, addr string) error {
	logger := newLogger(cfg)
	gin.SetMode(cfg.GinMode)

	gw, err := database.NewGateway(database.Config{
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}, logger)
	if err != nil {
		return err
	}
	if err := gw.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := gw.Disconnect(); err != nil {
			logger.Error().Err(err).Msg("database disconnect failed")
		}
	}()

	var events service.EventPublisher = service.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		if err != nil {
			return err
		}
		defer producer.Close()
		events = producer
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing post events")
	}

	svc := service.NewPostService(database.NewPostRepository(gw), events, logger)
	r := router.InitRouter(handler.NewPostHandler(svc, logger), gw, logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("driver", gw.Driver()).Msg("api listening")
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

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	return nil
}
