package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ayalane/mdshelf/internal/articles"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name     string
	Version  string
	Searcher *articles.Searcher
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Searcher != nil {
		articles.RegisterSearchTool(s, cfg.Searcher)
		articles.RegisterContentSearchTool(s, cfg.Searcher)
		articles.RegisterReadTool(s, cfg.Searcher)
		articles.RegisterListTagsTool(s, cfg.Searcher)
	}

	return s
}
