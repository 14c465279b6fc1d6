package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganot/typeset-board/internal/config"
	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/gate"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/logging"
	"github.com/ganot/typeset-board/internal/mcp"
	"github.com/ganot/typeset-board/internal/sqlite"
	"github.com/ganot/typeset-board/internal/transport"
	"github.com/ganot/typeset-board/internal/worklog"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

var version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Log.Level, cfg.Log.Path, cfg.Transport.Mode == "stdio")
	if err != nil {
		fmt.Fprintf(os.Stderr, "log setup error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	parseOpts := []worklog.Option{worklog.WithRangeExpansion(cfg.Parser.RangeExpansion)}
	if cfg.Parser.MaxRangeSpan > 0 {
		parseOpts = append(parseOpts, worklog.WithMaxRangeSpan(cfg.Parser.MaxRangeSpan))
	}

	memberRepo := sqlite.NewMemberRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)

	memberSvc := member.NewService(memberRepo, searchRepo, activityRepo, logger, parseOpts...)
	summarySvc := summary.NewService(memberSvc, logger)
	activitySvc := activity.NewService(activityRepo, logger)
	gateSvc := gate.NewService(settingsRepo, activityRepo, cfg.GatePassword(), logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Members:  memberSvc,
			Summary:  summarySvc,
			Activity: activitySvc,
		},
		ParseOptions: parseOpts,
		Version:      version,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, mcpServer)
	}

	router := transport.NewServer(transport.Services{
		Members:  memberSvc,
		Summary:  summarySvc,
		Gate:     gateSvc,
		Activity: activitySvc,
	}, transport.Options{
		ParseOptions: parseOpts,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		),
		Logger: logger,
	})
	return runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port, gateSvc.Enabled())
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	// The gate guards the shared HTTP surface; a local stdio client is trusted.
	logger.Info("starting stdio transport", "gate", "disabled")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int, gated bool) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr, "gate", gated)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
