package assist

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

// SearchJobs builds a search query from the resume record and filters, asks
// the completion API for listings, parses its free-text reply, and ranks the
// results by keyword overlap with the resume. Unparseable replies degrade to
// an empty result rather than an error.
func SearchJobs(ctx context.Context, resume *engine.ResumeRecord, filters engine.SearchFilters) (*engine.JobSearchOutput, error) {
	if resume == nil || resume.RawText == "" {
		return nil, fmt.Errorf("job_search: resume is required")
	}
	engine.IncrJobSearches()

	query := buildSearchQuery(resume, filters)
	raw, err := engine.CallLLM(ctx, engine.JobSearchSystemPrompt, query)
	if err != nil {
		return nil, fmt.Errorf("job_search LLM: %w", err)
	}

	jobs := ParseJobListings(raw)
	if len(jobs) == 0 {
		slog.Warn("job_search: no listings parsed from reply",
			slog.Int("reply_len", len(raw)))
	}

	resumeKW := ExtractResumeKeywords(resume.RawText)
	for i := range jobs {
		score, matching, missing := ScoreJobMatch(resumeKW, jobs[i].Title+" "+jobs[i].Description)
		jobs[i].MatchScore = score
		jobs[i].MatchingKeywords = matching
		jobs[i].MissingKeywords = missing
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].MatchScore > jobs[j].MatchScore
	})

	return &engine.JobSearchOutput{Query: query, Jobs: jobs}, nil
}

// buildSearchQuery assembles the candidate-profile prompt from the resume's
// top skills, most recent experience entry, and the sidebar filters.
func buildSearchQuery(resume *engine.ResumeRecord, filters engine.SearchFilters) string {
	skills := resume.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	experience := ""
	if len(resume.Experience) > 0 {
		experience = engine.TruncateAtWord(resume.Experience[0], 300)
	}
	location := filters.Location
	if location == "" {
		location = "Any"
	}
	remote := "No preference"
	if filters.Remote {
		remote = "Yes"
	}
	return fmt.Sprintf(engine.JobSearchQueryTemplate,
		strings.Join(skills, ", "),
		experience,
		location,
		remote,
		formatThousands(filters.MinSalary),
	)
}

// ParseJobListings parses the completion reply into job records. Each record
// is a run of "Key: value" lines; a blank line closes the current record.
func ParseJobListings(reply string) []engine.JobListing {
	var jobs []engine.JobListing
	var cur map[string]string

	flush := func() {
		if len(cur) == 0 {
			return
		}
		job := engine.JobListing{
			Title:       cur["title"],
			Company:     cur["company"],
			Location:    cur["location"],
			Salary:      cur["salary"],
			Description: cur["description"],
			URL:         cur["url"],
		}
		if job.Title != "" || job.Company != "" {
			jobs = append(jobs, job)
		}
		cur = nil
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "*-• \t"))
		if line == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "title", "company", "location", "salary", "description", "url":
			if cur == nil {
				cur = make(map[string]string)
			}
			// A repeated Title starts a new record even without a blank line.
			if key == "title" && cur["title"] != "" {
				flush()
				cur = map[string]string{}
			}
			cur[key] = value
		}
	}
	flush()
	return jobs
}

// formatThousands renders n with comma separators ("85,000").
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
