package assistserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerCompanyResearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "company_research",
		Description: "Research a company for interview preparation: business overview, recent developments, and culture/benefits. Results are cached; pass refresh=true to force a re-run.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.CompanyResearchInput) (*mcp.CallToolResult, engine.ResearchBundle, error) {
		if input.Company == "" {
			return nil, engine.ResearchBundle{}, fmt.Errorf("company is required")
		}

		var bundle *engine.ResearchBundle
		var err error
		if input.Refresh {
			bundle, err = assist.RefreshCompany(ctx, input.Company)
		} else {
			bundle, err = assist.ResearchCompany(ctx, input.Company)
		}
		if err != nil {
			return nil, engine.ResearchBundle{}, err
		}
		return nil, *bundle, nil
	})
}
