package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rpggio/mlaconnect/internal/app"
	"github.com/rpggio/mlaconnect/internal/config"
	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/mcp"
	"github.com/rpggio/mlaconnect/internal/sqlite"
	"github.com/rpggio/mlaconnect/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultTenant   = "default"
	sessionTimeout  = 30 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger writes to stdout, or stderr under stdio so stdout carries only
// protocol frames. A configured log file takes precedence.
func newLogger(cfg config.Config) (*slog.Logger, func()) {
	out := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		out = os.Stderr
	}
	closeLog := func() {}
	if cfg.Log.Path != "" {
		file, err := openLogFile(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			out = file
			closeLog = func() { _ = file.Close() }
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeLog
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := ensureDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return err
	}

	a := app.New(db, logger,
		dashboard.WithPageSize(cfg.Table.PageSize),
		dashboard.WithLocale(cfg.Table.Tag()),
	)
	mcpServer := mcp.NewServer(mcp.Config{
		Services:      a.MCPServices(),
		Resolver:      a.APIKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultTenant: defaultTenant,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Transport.Mode == "stdio" {
		logger.Info("serving MCP over stdio", "db", cfg.DB.Path)
		// Run returns when stdin closes or a signal arrives.
		if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		return nil
	}

	auth := transport.StaticTenant(defaultTenant)
	if cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(a.APIKeys)
	}
	handler := transport.NewServer(transport.Config{
		Handler: mcp.NewHandler(a.MCPServices()),
		Tables:  a.Catalog,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: sessionTimeout},
		),
		Auth:   auth,
		Logger: logger,
	})
	return serveHTTP(ctx, logger, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), handler)
}

// serveHTTP listens until ctx is done, then drains in-flight requests.
func serveHTTP(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ensureDir creates the parent directory of a file-backed database or log.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}
