package assistserver

import (
	"context"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ApplicationListOutput wraps the tracker list result.
type ApplicationListOutput struct {
	Total        int                  `json:"total"`
	Applications []assist.Application `json:"applications"`
}

func registerApplicationAdd(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_add",
		Description: "Track a new job application. Requires company and position; status defaults to 'applied'. Optional notes, URL, salary range, location, and contact info.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ApplicationAddInput) (*mcp.CallToolResult, assist.Application, error) {
		app, err := assist.AddApplication(ctx, input)
		if err != nil {
			return nil, assist.Application{}, err
		}
		return nil, *app, nil
	})
}

func registerApplicationUpdate(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_update",
		Description: "Update a tracked application's status and/or notes by id. Valid statuses: applied, interview, offer, accepted, rejected.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ApplicationUpdateInput) (*mcp.CallToolResult, assist.Application, error) {
		app, err := assist.UpdateApplication(ctx, input)
		if err != nil {
			return nil, assist.Application{}, err
		}
		return nil, *app, nil
	})
}

func registerApplicationList(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "application_list",
		Description: "List tracked job applications, newest first. Optional filters: status, company name substring, applied-date range (RFC 3339).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ApplicationListInput) (*mcp.CallToolResult, ApplicationListOutput, error) {
		apps, err := assist.ListApplications(ctx, input)
		if err != nil {
			return nil, ApplicationListOutput{}, err
		}
		return nil, ApplicationListOutput{Total: len(apps), Applications: apps}, nil
	})
}
