package assistserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResumeMatch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resume_match",
		Description: "Score a resume against a job description by keyword overlap. Returns a 0-100 match score plus matching and missing keywords. Pure text analysis, no LLM call.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ResumeMatchInput) (*mcp.CallToolResult, engine.ResumeMatchOutput, error) {
		if input.Resume == "" || input.JobDescription == "" {
			return nil, engine.ResumeMatchOutput{}, fmt.Errorf("resume and job_description are required")
		}

		kw := assist.ExtractResumeKeywords(input.Resume)
		score, matching, missing := assist.ScoreJobMatch(kw, input.JobDescription)
		return nil, engine.ResumeMatchOutput{
			MatchScore:       score,
			MatchingKeywords: matching,
			MissingKeywords:  missing,
		}, nil
	})
}
