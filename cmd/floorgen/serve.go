package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/floorgen/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve floors over HTTP",
	Long: `Start the HTTP API. GET /floor?dungeon=&floor=&seed= returns a floor as
JSON and /metrics exposes Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := server.New(app.catalog, app.loader, app.logger)
	api.Override = app.cfg.ApplyFloor

	mux := http.NewServeMux()
	mux.Handle("/", api.Handler())

	servers := []*http.Server{{Addr: listenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}}
	if addr := app.cfg.Telemetry.MetricsAddr; addr != "" && addr != listenAddr {
		metrics := http.NewServeMux()
		metrics.Handle("/metrics", promhttp.Handler())
		servers = append(servers, &http.Server{Addr: addr, Handler: metrics, ReadHeaderTimeout: 5 * time.Second})
	} else {
		mux.Handle("/metrics", promhttp.Handler())
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			app.logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
