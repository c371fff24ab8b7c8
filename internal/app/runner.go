package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"github.com/ayalane/mdshelf/internal/articles"
	"github.com/ayalane/mdshelf/internal/config"
	mcputil "github.com/ayalane/mdshelf/internal/mcp"
	"github.com/ayalane/mdshelf/internal/store"
)

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(*config.Settings) (*mcp.Server, error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid buffering issues
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting mdshelf server", "version", version)
	config.Log(settings)

	mcpServer, err := params.CreateServer(settings)
	if err != nil {
		return err
	}

	// Start server
	if settings.Transport == "stdio" {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	} else {
		slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
		return params.StartSSEServer(mcpServer, settings)
	}
}

// CreateMCPServer creates the MCP server with registered tools
func CreateMCPServer(settings *config.Settings) (*mcp.Server, error) {
	searcher, err := NewSearcher(context.Background(), settings)
	if err != nil {
		return nil, err
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:     "mdshelf",
		Version:  "1.0.0",
		Searcher: searcher,
	})

	return server, nil
}

// NewSearcher wires a store client and searcher from resolved settings
func NewSearcher(ctx context.Context, settings *config.Settings) (*articles.Searcher, error) {
	gh, err := store.NewGitHub(ctx, &settings.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to create store client: %w", err)
	}

	return articles.NewSearcher(gh, articles.Options{
		Concurrency: settings.Store.Concurrency,
		Lenient:     settings.Store.Lenient,
		MaxResults:  settings.Store.MaxResults,
	}), nil
}
