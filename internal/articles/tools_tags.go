package articles

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTagsArgument defines list_tags parameters. There are none.
type ListTagsArgument struct{}

// ListTagsHandler handles the list_tags MCP tool.
type ListTagsHandler struct {
	searcher *Searcher
}

// NewListTagsHandler creates a new list_tags handler.
func NewListTagsHandler(searcher *Searcher) *ListTagsHandler {
	return &ListTagsHandler{
		searcher: searcher,
	}
}

// Handle collects the union of tag sets across all articles.
func (h *ListTagsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListTagsArgument) (*mcp.CallToolResult, any, error) {
	articles, err := h.searcher.FetchAll(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to fetch articles: %s", err)), nil, nil
	}

	counts := make(map[string]int)
	for _, a := range articles {
		for _, tag := range a.Tags {
			counts[tag]++
		}
	}

	if len(counts) == 0 {
		return textResult("No tags declared in the article collection"), nil, nil
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d tags across %d articles:\n\n", len(tags), len(articles)))
	for _, tag := range tags {
		sb.WriteString(fmt.Sprintf("- %s (%d)\n", tag, counts[tag]))
	}

	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ListTagsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag declared across the article collection with article counts",
	}
}

// RegisterListTagsTool registers the list_tags tool with an MCP server.
func RegisterListTagsTool(server *mcp.Server, searcher *Searcher) {
	handler := NewListTagsHandler(searcher)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
