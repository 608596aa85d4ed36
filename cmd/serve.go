package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/internal/config"
	"github.com/yumyai/genecanvas/logger"
	"github.com/yumyai/genecanvas/pkg/db"
	"github.com/yumyai/genecanvas/pkg/handler"
	"github.com/yumyai/genecanvas/pkg/middle"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design API over HTTP",
		Example: `  genecanvas serve --addr 127.0.0.1:8080
  GENECANVAS_DATA=/srv/genecanvas genecanvas serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String(config.KeyAddr, "", "listen address (GENECANVAS_ADDR, default 0.0.0.0:8080)")
	_ = a.v.BindPFlag(config.KeyAddr, cmd.Flags().Lookup(config.KeyAddr))
	return cmd
}

// newHandler wires the router, the design sessions and the middleware.
func newHandler(catalog db.TemplateLookup, strict bool, log *zap.Logger) http.Handler {
	dctx := &handler.DesignContext{
		Catalog: catalog,
		Designs: handler.NewDesignManager(log, strict),
		Log:     log,
	}
	return middle.Chain(handler.NewRouter(dctx),
		middle.RequestIDMiddleware(log),
		middle.LoggingMiddleware(log),
	)
}

func (a *app) serve(ctx context.Context) error {
	catalog, err := db.Open(a.cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer catalog.Close()

	logger.Info("Start:", zap.String("Version", Version))
	logger.Info("Open catalog on", zap.String("DB_LOC", a.cfg.CatalogPath))

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           newHandler(catalog, a.cfg.Strict, logger.L()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", a.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
