package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"patientor/internal/config"
	"patientor/internal/models"
	"patientor/internal/repository"
	"patientor/internal/routes"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the patientor API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				a.cfg.Port = port
			}
			if storage, _ := cmd.Flags().GetString("storage"); storage != "" {
				a.cfg.Storage = storage
			}
			return runServer(cmd.Context(), a)
		},
	}
	cmd.Flags().String("port", "", "Listen port, overrides PORT")
	cmd.Flags().String("storage", "", "Storage driver (memory or mysql), overrides STORAGE")
	return cmd
}

func openRepository(a *app) (repository.Repository, error) {
	switch a.cfg.Storage {
	case config.StorageMemory:
		return repository.NewMemoryRepository(), nil
	case config.StorageMySQL:
		db, err := models.InitDB(models.DatabaseConfig{
			DSN:   a.cfg.Database.DSN,
			Debug: a.cfg.IsDev(),
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.logger.Info().Str("host", a.cfg.Database.Host).Str("db", a.cfg.Database.Name).Msg("connected to database")
		return repository.NewGormRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", a.cfg.Storage)
	}
}

func runServer(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := a.logger

	if !a.cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := openRepository(a)
	if err != nil {
		return err
	}
	seeded, err := repository.SeedDiagnoses(ctx, repo)
	if err != nil {
		return fmt.Errorf("seed diagnoses: %w", err)
	}
	if seeded {
		logger.Info().Int("count", len(repository.DefaultDiagnoses)).Msg("seeded diagnoses")
	}

	router, err := routes.NewRouter(repo, a.cfg, logger)
	if err != nil {
		return err
	}
	if !a.cfg.AuthEnabled() {
		logger.Warn().Msg("JWT_SECRET is not set, API authentication is disabled")
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("storage", a.cfg.Storage).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
