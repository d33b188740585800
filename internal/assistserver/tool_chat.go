package assistserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerChat(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Talk to the job search assistant. Classifies the message intent (job search, company research, application tracking, statistics, or general) and routes it to the matching capability. Requires an uploaded resume for job searches.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ChatInput) (*mcp.CallToolResult, engine.ChatOutput, error) {
		if input.Message == "" {
			return nil, engine.ChatOutput{}, fmt.Errorf("message is required")
		}
		return nil, assist.Respond(ctx, input), nil
	})
}
