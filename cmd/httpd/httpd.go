// Package httpd implements the httpd command: serve the merged catalog over
// a read-only HTTP API.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Bloodwingv2/gamecrawl/cmd/common"
	"github.com/Bloodwingv2/gamecrawl/internal/api"
	"github.com/Bloodwingv2/gamecrawl/internal/storage"
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// Command creates the httpd command.
func Command(cfgFile *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the catalog query API",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(*cfgFile, *debug)
			if err != nil {
				return err
			}
			cfg := deps.Config

			db, err := storage.NewPostgresConnection(cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer storage.Close(db)

			repo := storage.NewRepository(db, deps.Logger)
			if err := repo.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			if !cfg.App.Debug {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			router.Use(gin.Recovery())
			api.SetupRoutes(router, api.NewGamesHandler(repo))

			server := &http.Server{
				Addr:         cfg.Server.Address,
				Handler:      router,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				deps.Logger.Info("Starting HTTP server", "address", cfg.Server.Address)
				if serveErr := server.ListenAndServe(); serveErr != nil &&
					!errors.Is(serveErr, http.ErrServerClosed) {
					errCh <- serveErr
				}
			}()

			select {
			case serveErr := <-errCh:
				return fmt.Errorf("http server: %w", serveErr)
			case <-ctx.Done():
			}

			deps.Logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
				return fmt.Errorf("shutdown: %w", shutdownErr)
			}
			return nil
		},
	}
}
