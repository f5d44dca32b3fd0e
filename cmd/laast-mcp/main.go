package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/laast/internal/version"
	"github.com/ludo-technologies/laast/mcp"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file (default: discover .laast.toml per request)")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging")
	pflag.Parse()

	// stdout carries JSON-RPC
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	server := mcpserver.NewMCPServer(
		version.Name,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(nil, *configPath, logger)))

	logger.Info("starting MCP server",
		"name", version.Name,
		"version", version.Short(),
		"tools", []string{"compare_corpus", "parse_file"})

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
