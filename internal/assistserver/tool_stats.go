package assistserver

import (
	"context"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ApplicationStatsInput has no parameters; the stats cover the whole tracker.
type ApplicationStatsInput struct{}

func registerApplicationStats(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_stats",
		Description: "Summarise the application tracker: total applications, per-status breakdown, and success rate (accepted / total).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ApplicationStatsInput) (*mcp.CallToolResult, engine.ApplicationStats, error) {
		stats, err := assist.ApplicationStatistics(ctx)
		if err != nil {
			return nil, engine.ApplicationStats{}, err
		}
		return nil, *stats, nil
	})
}
