package oracle

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type FeedbackCacheStatsInput struct{}

type FeedbackCacheStatsOutput struct {
	Keys         int `json:"keys"`
	Observations int `json:"observations"`
}

// registerFeedbackCacheStats exposes the feedback cache's size, so an
// operator can see how much observation history has accumulated
// without reaching into Redis directly.
func registerFeedbackCacheStats(server *mcp.Server, o *Oracle) {
	handler := func(ctx context.Context, req *mcp.CallToolRequest, input FeedbackCacheStatsInput) (*mcp.CallToolResult, FeedbackCacheStatsOutput, error) {
		keys, observations, err := o.Cache.Stats(ctx)
		if err != nil {
			return nil, FeedbackCacheStatsOutput{}, err
		}
		return nil, FeedbackCacheStatsOutput{Keys: keys, Observations: observations}, nil
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_feedback_cache_stats",
		Description: "Report the size of the parameter value feedback cache",
	}, handler)
}
