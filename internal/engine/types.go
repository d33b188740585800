package engine

// --- Chat types ---

// ChatInput is the input for the chat endpoint and the chat MCP tool.
type ChatInput struct {
	Message   string `json:"message" jsonschema:"Free-text user message for the assistant"`
	SessionID string `json:"session_id,omitempty" jsonschema:"Chat session identifier (default: default)"`
	Location  string `json:"location,omitempty" jsonschema:"Preferred job location filter"`
	Remote    bool   `json:"remote,omitempty" jsonschema:"Prefer remote positions"`
	MinSalary int    `json:"min_salary,omitempty" jsonschema:"Minimum annual salary filter"`
}

// ChatOutput is the assistant's reply for one turn.
type ChatOutput struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

// ChatMessage is one persisted chat history entry.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// --- Job search types ---

// SearchFilters are the sidebar filters applied to a job search.
type SearchFilters struct {
	Location  string `json:"location,omitempty" jsonschema:"City, country, or Remote"`
	Remote    bool   `json:"remote,omitempty" jsonschema:"Prefer remote positions"`
	MinSalary int    `json:"min_salary,omitempty" jsonschema:"Minimum annual salary"`
}

// JobSearchInput is the input for the job_search MCP tool.
type JobSearchInput struct {
	Resume    string `json:"resume" jsonschema:"Resume text to search against"`
	Location  string `json:"location,omitempty" jsonschema:"City, country, or Remote"`
	Remote    bool   `json:"remote,omitempty" jsonschema:"Prefer remote positions"`
	MinSalary int    `json:"min_salary,omitempty" jsonschema:"Minimum annual salary"`
}

// JobListing is a structured representation of a job listing parsed from the
// completion reply.
type JobListing struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Salary           string   `json:"salary"`
	Description      string   `json:"description"`
	URL              string   `json:"url"`
	MatchScore       float64  `json:"match_score"`                 // 0–100 keyword overlap
	MatchingKeywords []string `json:"matching_keywords,omitempty"` // resume skills this job wants
	MissingKeywords  []string `json:"missing_keywords,omitempty"`  // job keywords absent from resume
}

// JobSearchOutput is the structured output for job_search.
type JobSearchOutput struct {
	Query string       `json:"query"`
	Jobs  []JobListing `json:"jobs"`
}

// --- Company research types ---

// CompanyResearchInput is the input for the company_research MCP tool.
type CompanyResearchInput struct {
	Company string `json:"company" jsonschema:"Company name to research"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"Bypass the cache and re-run the research"`
}

// ResearchBundle is the merged output of the three concurrent research calls.
type ResearchBundle struct {
	Company            string `json:"company"`
	Overview           string `json:"overview"`
	RecentDevelopments string `json:"recent_developments"`
	CultureAndBenefits string `json:"culture_and_benefits"`
	RetrievedAt        string `json:"retrieved_at"`
}

// --- Resume types ---

// ResumeRecord is the coarse structured record extracted from an upload.
type ResumeRecord struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	RawText    string   `json:"raw_text"`
}

// ResumeMatchInput is the input for the resume_match MCP tool.
type ResumeMatchInput struct {
	Resume         string `json:"resume" jsonschema:"Resume text"`
	JobDescription string `json:"job_description" jsonschema:"Job description to match against"`
}

// ResumeMatchOutput is the keyword-overlap analysis of a resume against a job.
type ResumeMatchOutput struct {
	MatchScore       float64  `json:"match_score"` // 0–100
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
}

// --- Application tracker types ---

// ApplicationAddInput is the input for adding a tracked application.
type ApplicationAddInput struct {
	Company     string `json:"company" jsonschema:"Company name"`
	Position    string `json:"position" jsonschema:"Position title"`
	Status      string `json:"status,omitempty" jsonschema:"Status: applied (default), interview, offer, accepted, rejected"`
	Notes       string `json:"notes,omitempty" jsonschema:"Free-text notes"`
	URL         string `json:"url,omitempty" jsonschema:"Job posting URL"`
	SalaryRange string `json:"salary_range,omitempty" jsonschema:"Salary range as posted"`
	Location    string `json:"location,omitempty" jsonschema:"Job location"`
	ContactInfo string `json:"contact_info,omitempty" jsonschema:"Recruiter or contact details"`
}

// ApplicationUpdateInput is the input for updating a tracked application.
type ApplicationUpdateInput struct {
	ID     int64  `json:"id" jsonschema:"Application id from the tracker"`
	Status string `json:"status,omitempty" jsonschema:"New status: applied, interview, offer, accepted, rejected"`
	Notes  string `json:"notes,omitempty" jsonschema:"Replacement notes"`
}

// ApplicationListInput is the input for listing tracked applications.
type ApplicationListInput struct {
	Status  string `json:"status,omitempty" jsonschema:"Filter by status"`
	Company string `json:"company,omitempty" jsonschema:"Filter by company name substring"`
	From    string `json:"from,omitempty" jsonschema:"Applied-date range start (RFC 3339)"`
	To      string `json:"to,omitempty" jsonschema:"Applied-date range end (RFC 3339)"`
}

// ApplicationStats summarises the tracker contents.
type ApplicationStats struct {
	Total           int            `json:"total_applications"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	SuccessRate     float64        `json:"success_rate"` // accepted / total, 0 when empty
}
