package assistserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerJobSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_search",
		Description: "Search for job listings matching a resume. Builds a search query from the resume's skills and experience, applies location/remote/salary filters, and returns structured listings ranked by keyword match score.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.JobSearchInput) (*mcp.CallToolResult, engine.JobSearchOutput, error) {
		if input.Resume == "" {
			return nil, engine.JobSearchOutput{}, fmt.Errorf("resume is required")
		}

		record := assist.ParseResumeText(input.Resume)
		out, err := assist.SearchJobs(ctx, record, engine.SearchFilters{
			Location:  input.Location,
			Remote:    input.Remote,
			MinSalary: input.MinSalary,
		})
		if err != nil {
			return nil, engine.JobSearchOutput{}, err
		}
		return nil, *out, nil
	})
}
