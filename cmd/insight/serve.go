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

	"github.com/spf13/cobra"

	"github.com/angelcm/campaign-insight-go/internal/auth"
	"github.com/angelcm/campaign-insight-go/internal/config"
	"github.com/angelcm/campaign-insight-go/internal/dataset"
	"github.com/angelcm/campaign-insight-go/internal/forecast"
	"github.com/angelcm/campaign-insight-go/internal/httpx"
	"github.com/angelcm/campaign-insight-go/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)

		store, err := auth.NewStaticStore(cfg.Users)
		if err != nil {
			return err
		}
		gate, err := auth.NewGate(store)
		if err != nil {
			return err
		}

		loader, closeLoader, err := newLoader(cfg)
		if err != nil {
			return err
		}
		defer closeLoader()

		prom := metrics.NewRegistry()
		fc := forecast.NewAdapter(cfg.ModelPath)
		srv := httpx.NewServer(logger, gate, dataset.NewCache(loader), fc, prom, cfg.LogoPath)

		httpSrv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           httpx.NewRouter(logger, srv),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.HTTPTimeout,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("starting server", slog.String("port", cfg.Port))
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

// newLoader picks the dataset source: a sqlite database when configured,
// the CSV file otherwise.
func newLoader(cfg config.Config) (dataset.Loader, func(), error) {
	if cfg.DatasetDB != "" {
		l, err := dataset.OpenSQLite(cfg.DatasetDB)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { l.Close() }, nil
	}
	return dataset.NewCSVLoader(cfg.DatasetCSV), func() {}, nil
}
