package oracle

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DevelopmentGuideInput struct{}

type DevelopmentGuideOutput struct {
	HTML string `json:"html"`
}

// registerDevelopmentGuide renders the loaded development guide to
// HTML, so a tester can read the same documentation the engine
// consulted without leaving the MCP client.
func registerDevelopmentGuide(server *mcp.Server, o *Oracle) {
	handler := func(ctx context.Context, req *mcp.CallToolRequest, input DevelopmentGuideInput) (*mcp.CallToolResult, DevelopmentGuideOutput, error) {
		html, err := o.Store.Render()
		if err != nil {
			return nil, DevelopmentGuideOutput{}, err
		}
		return nil, DevelopmentGuideOutput{HTML: html}, nil
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_development_guide",
		Description: "Render the loaded GA4 development guide to HTML",
	}, handler)
}

// RegisterTools adds all oracle engine tools to the MCP server.
func RegisterTools(server *mcp.Server, o *Oracle) {
	registerLoadContainer(server, o)
	registerAnalyzePage(server, o)
	registerFeedbackCacheStats(server, o)
	registerDevelopmentGuide(server, o)
}
