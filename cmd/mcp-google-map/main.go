package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dendik/mcp-google-map/pkg/config"
	"github.com/dendik/mcp-google-map/pkg/maps"
	"github.com/dendik/mcp-google-map/pkg/metrics"
	"github.com/dendik/mcp-google-map/pkg/server"
	"github.com/dendik/mcp-google-map/pkg/telemetry"
	"github.com/dendik/mcp-google-map/pkg/tools"
	"github.com/dendik/mcp-google-map/pkg/version"
)

// clientServerName is the key under mcpServers in generated client configs.
const clientServerName = "google-maps"

var (
	showVersion    bool
	debug          bool
	configPath     string
	generateConfig string
	transport      string
	addr           string
	metricsAddr    string
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (default ./config.yaml if present)")
	flag.StringVar(&generateConfig, "generate-config", "", "Generate an MCP client config file at the specified path")
	flag.StringVar(&transport, "transport", "", "MCP transport: stdio or sse")
	flag.StringVar(&addr, "addr", "", "Listen address for the sse transport")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Listen address for /metrics and /healthcheck (disabled when empty)")
}

func main() {
	flag.Parse()

	// Stdout belongs to the stdio transport; everything else goes to stderr.
	logger := newLogger(os.Stderr, slog.LevelInfo, "text")
	slog.SetDefault(logger)

	if showVersion {
		fmt.Println(version.String())
		return
	}

	if generateConfig != "" {
		if err := generateClientConfig(generateConfig, os.Getenv(config.APIKeyEnv)); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("successfully generated MCP client config", "path", generateConfig)
		return
	}

	cfg, err := config.Load(configPath, flagOverrides())
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level := cfg.LogLevel()
	if debug {
		level = slog.LevelDebug
	}
	logger = newLogger(os.Stderr, level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting Google Maps MCP server",
		"version", version.BuildVersion,
		"transport", cfg.Server.Transport,
		"log_level", level.String())

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func flagOverrides() map[string]any {
	return map[string]any{
		"server.transport": transport,
		"server.addr":      addr,
		"metrics.addr":     metricsAddr,
	}
}

func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// run serves MCP and the optional metrics listener until ctx is cancelled
// or the transport ends.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			logger.Warn("telemetry init failed", "error", err)
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(flushCtx); err != nil {
					logger.Warn("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	client, err := maps.NewClient(cfg.MapsConfig(logger))
	if err != nil {
		return fmt.Errorf("create maps client: %w", err)
	}
	srv := server.NewServer(tools.NewRegistry(tools.NewService(client, logger), logger), logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The transport ending (stdin closed) stops everything else too.
		defer cancel()
		return srv.Run(gctx, cfg.Server)
	})

	if cfg.Metrics.Addr != "" {
		httpSrv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("metrics server starting", "addr", cfg.Metrics.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	logger.Info("server stopped")
	return err
}

// generateClientConfig creates or updates an MCP client config file such as
// Claude Desktop's, adding this server under mcpServers.
func generateClientConfig(outputPath, apiKey string) error {
	logger := slog.Default()

	if outputPath == "" {
		return errors.New("output path is required")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("config path must end in .json: %s", outputPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(outputPath), "/") {
		if part == ".." {
			return fmt.Errorf("config path must not contain '..': %s", outputPath)
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	if apiKey == "" {
		apiKey = "<YOUR_API_KEY>"
	}
	serverConfig := map[string]any{
		"command": absExecPath,
		"args":    []string{},
		"env":     map[string]string{config.APIKeyEnv: apiKey},
	}

	var cfg map[string]any
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			logger.Warn("existing config is not valid JSON, will create new", "error", err)
			cfg = nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}
	if cfg == nil {
		cfg = make(map[string]any)
	}

	mcpServers, ok := cfg["mcpServers"].(map[string]any)
	if !ok {
		mcpServers = make(map[string]any)
		cfg["mcpServers"] = mcpServers
	}
	mcpServers[clientServerName] = serverConfig

	// Keep the placeholder key readable: no \u003c escapes.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data := buf.Bytes()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	// The file holds the API key.
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Chmod(outputPath, 0o600)
}
