package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Mikefromtheback/plagiat-check/internal/config"
	"github.com/Mikefromtheback/plagiat-check/internal/version"
	"github.com/Mikefromtheback/plagiat-check/mcp"
)

const serverName = "plagiat"

func main() {
	// stdout carries JSON-RPC, so logs go to stderr only
	configPath := os.Getenv("PLAGIAT_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, configPath, logger)))

	logger.Info("starting MCP server", "name", serverName, "version", version.Short(),
		"tools", []string{"compare_files", "compare_pairs", "canonicalize_file"})

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
