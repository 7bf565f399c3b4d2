package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"n8n-mcp-server/internal/api"
	"n8n-mcp-server/internal/config"
	"n8n-mcp-server/internal/logging"
	"n8n-mcp-server/internal/mcp"
	"n8n-mcp-server/internal/n8n"
	devtls "n8n-mcp-server/internal/tls"
)

var (
	cfgFile   string
	transport string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "n8n-mcp-server",
		Short:        "MCP server exposing n8n workflow management tools",
		RunE:         run,
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.Flags().StringVar(&transport, "transport", "stdio", "Transport to serve on: stdio or sse")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}

	client := n8n.NewClient(cfg.N8N.Host, cfg.N8N.APIKey)
	srv := mcp.NewServer(client)

	switch transport {
	case "stdio":
		logger.Info("n8n MCP server running on stdio", "n8n_host", cfg.N8N.Host)
		return mcpserver.ServeStdio(srv.GetMCPServer())
	case "sse":
		return serveHTTP(cfg, srv, logger)
	default:
		return fmt.Errorf("unknown transport %q (expected stdio or sse)", transport)
	}
}

// serveHTTP runs the surrounding HTTP wrapper: echo with the MCP SSE
// endpoints mounted, graceful shutdown on SIGINT/SIGTERM.
func serveHTTP(cfg *config.Config, srv *mcp.Server, logger *logging.Logger) error {
	e := api.NewRouter(srv.GetMCPServer())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     e,
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: SSE streams stay open indefinitely
		IdleTimeout: 60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			"address", addr,
			"tls", cfg.TLS.Enable,
			"instance_id", uuid.New().String(),
		)
		if cfg.TLS.Enable {
			if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
				logger.Error("TLS enabled but cert/key file not provided")
				serverErrors <- server.ListenAndServe()
				return
			}
			if _, err := os.Stat(cfg.TLS.CertFile); os.IsNotExist(err) {
				if len(cfg.TLS.Hostnames) > 0 {
					if err := devtls.GenerateSelfSignedCert(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.Hostnames); err != nil {
						logger.Error("failed to generate self-signed cert", "error", err)
					}
				}
			}
			serverErrors <- server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return err
		}
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			if err := server.Close(); err != nil {
				logger.Error("Server close error", "error", err)
			}
		}

		logger.Info("Server stopped gracefully")
	}

	return nil
}
