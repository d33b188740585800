package assistserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all assistant tools on the given MCP server:
// chat, job_search, company_research, resume_match, and the
// application tracker tools.
func RegisterTools(server *mcp.Server) {
	registerChat(server)
	registerJobSearch(server)
	registerCompanyResearch(server)
	registerResumeMatch(server)
	registerApplicationAdd(server)
	registerApplicationUpdate(server)
	registerApplicationList(server)
	registerApplicationStats(server)
}
