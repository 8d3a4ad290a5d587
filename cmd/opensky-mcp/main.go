package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kxdev/opensky-mcp/internal/api"
	"github.com/kxdev/opensky-mcp/internal/config"
	"github.com/kxdev/opensky-mcp/internal/opensky"
	"github.com/kxdev/opensky-mcp/internal/tools"
	"github.com/kxdev/opensky-mcp/pkg/logger"
)

const (
	serverName    = "opensky-mcp"
	serverVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to the TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "opensky-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	client := opensky.NewClient(
		cfg.OpenSky.BaseURL,
		time.Duration(cfg.OpenSky.RequestTimeoutSeconds)*time.Second,
		log,
	)
	svc := opensky.NewService(client, cfg.OpenSky.DefaultLimit, cfg.OpenSky.MaxLimit, log)

	if cfg.Server.HTTPEnabled {
		router := api.NewRouter(svc, cfg.Server.CORSAllowedOrigins, log)
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		httpServer := &http.Server{
			Addr:    addr,
			Handler: router.Routes(),
		}

		go func() {
			log.Info("HTTP API listening", logger.String("addr", addr))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("HTTP server failed", logger.Error(err))
			}
		}()
	}

	mcpServer := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
	)
	tools.New(svc, log).Register(mcpServer)

	log.Info("Serving MCP over stdio",
		logger.String("upstream", cfg.OpenSky.BaseURL),
		logger.Int("timeout_s", cfg.OpenSky.RequestTimeoutSeconds),
	)

	// Blocks until the client closes stdin.
	return server.ServeStdio(mcpServer)
}
