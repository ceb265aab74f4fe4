package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpadapter "github.com/novabrowser/nova/internal/adapters/mcp"
	"github.com/novabrowser/nova/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the document engine as an MCP server so agents can fetch,
render and inspect documents as tools.

Supported transports:
- stdio (default): standard input/output, for local process integration.
- sse: Server-Sent Events over HTTP, for remote agents (--sse).`,
	Run: func(cmd *cobra.Command, args []string) {
		sseAddr, _ := cmd.Flags().GetString("sse")
		baseURL, _ := cmd.Flags().GetString("base-url")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		// Logs go to stderr so they cannot corrupt JSON-RPC on stdout.
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		b, cleanup, err := buildBrowser(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing nova: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		srv := mcpadapter.NewServer(b, mcpadapter.WithLogger(logger))

		if sseAddr == "" {
			logger.Info("starting mcp server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("mcp server execution failed", "err", err)
				os.Exit(1)
			}
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ServeSSE(ctx, sseAddr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mcp server execution failed", "err", err)
			os.Exit(1)
		}
		logger.Info("mcp server stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("sse", "", "Serve over SSE on this address (e.g. :8766) instead of stdio")
	mcpCmd.Flags().String("base-url", "", "Externally visible base URL advertised to SSE clients")
}
