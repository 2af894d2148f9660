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

	"physio-service/internal/handler"
	"physio-service/pkg/database"
	"physio-service/pkg/jwtutil"
	"physio-service/pkg/logger"
	"physio-service/prometheus"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	skipMigrate     bool
	shutdownTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()

		if !skipMigrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("Database schema migrated")
		}

		tokens := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
			SigningKey: cfg.JWT.SigningKey,
			TTL:        cfg.JWT.TTL(),
			Disabled:   cfg.JWT.AuthDisabled,
		})
		if tokens.Disabled() {
			log.Warn("Authentication is disabled, every route is open")
		}

		prometheus.InitMetrics(cfg.Metrics.Service)

		e := handler.NewServer(handler.New(db, tokens), cfg.Server.CORSAllowOrigins)
		e.HidePort = true

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- e.Start(":" + cfg.Server.Port)
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema before serving")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	rootCmd.AddCommand(serveCmd)
}
