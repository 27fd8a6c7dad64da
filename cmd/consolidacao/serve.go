package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/empetur/consolidacao/internal/config"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/mcp"
	"github.com/empetur/consolidacao/internal/sheet"
	"github.com/empetur/consolidacao/internal/transport"
	"github.com/empetur/consolidacao/internal/watch"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing session over MCP (stdio or streamable HTTP)",
		Example: `  # HTTP transport on the configured host and port
  consolidacao serve --source inventario_preliminar_app.xlsx

  # stdio transport for a local MCP client
  consolidacao serve --transport stdio`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().String("transport", "", "transport mode: stdio or http (overrides CONSOLIDACAO_TRANSPORT)")
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	cfg := a.cfg
	logger := a.logger

	exportFormat, err := sheet.ParseFormat(cfg.Export.Format)
	if err != nil {
		return fmt.Errorf("export format: %w", err)
	}

	repo, sourceDB, err := a.openSource(cfg.Source.Path)
	if err != nil {
		return err
	}
	activitySvc, err := a.openActivity(sourceDB)
	if err != nil {
		return err
	}

	sessionSvc := session.NewService(repo, activitySvc, logger)
	info, err := sessionSvc.Open(ctx)
	if err != nil {
		return fmt.Errorf("open source %s: %w", cfg.Source.Path, err)
	}
	logger.Info("session opened", "session_id", info.ID, "source", cfg.Source.Path, "rows", info.Rows)

	if backend, _ := cfg.Source.Backend(); cfg.Source.Watch && backend == config.BackendSheet {
		w, err := watch.New(cfg.Source.Path, watch.DefaultDebounce, func() {
			sessionSvc.MarkSourceChanged(ctx)
		}, logger)
		if err != nil {
			return fmt.Errorf("watch source: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watch source: %w", err)
		}
		defer w.Stop()
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Sessions: sessionSvc,
			Activity: activitySvc,
		},
		ExportDir:    cfg.Export.Dir,
		ExportFormat: exportFormat,
		Logger:       logger,
	})

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, mcpServer)
	}
	router := transport.NewServer(transport.Options{
		MCP:          mcpServer,
		Routes:       sessionSvc,
		ExportFormat: exportFormat,
		Logger:       logger,
	})
	return runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
