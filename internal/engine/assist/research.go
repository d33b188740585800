package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

const notAvailable = "Not available"

// ResearchCompany gathers a research bundle for a company: three concurrent
// completion calls (overview, recent developments, culture), merged and
// cached by normalized company name. A single failed call degrades to a
// placeholder; only the failure of all three is an error.
func ResearchCompany(ctx context.Context, company string) (*engine.ResearchBundle, error) {
	return researchCompany(ctx, company, false)
}

// RefreshCompany bypasses the cache and re-runs the research.
func RefreshCompany(ctx context.Context, company string) (*engine.ResearchBundle, error) {
	return researchCompany(ctx, company, true)
}

func researchCompany(ctx context.Context, company string, refresh bool) (*engine.ResearchBundle, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, fmt.Errorf("company_research: company name is required")
	}
	engine.IncrResearchRequests()

	key := researchCacheKey(company)
	if !refresh {
		if bundle, ok := engine.CacheLoadJSON[engine.ResearchBundle](ctx, key); ok {
			return &bundle, nil
		}
	}

	type callResult struct {
		field string
		text  string
		err   error
	}
	calls := []struct {
		field  string
		system string
		prompt string
	}{
		{"overview", engine.CompanyOverviewSystem, engine.CompanyOverviewPrompt},
		{"news", engine.CompanyNewsSystem, engine.CompanyNewsPrompt},
		{"culture", engine.CompanyCultureSystem, engine.CompanyCulturePrompt},
	}

	ch := make(chan callResult, len(calls))
	for _, c := range calls {
		go func(field, system, prompt string) {
			text, err := engine.CallLLM(ctx, system, fmt.Sprintf(prompt, company))
			ch <- callResult{field: field, text: text, err: err}
		}(c.field, c.system, c.prompt)
	}

	bundle := &engine.ResearchBundle{
		Company:            company,
		Overview:           notAvailable,
		RecentDevelopments: notAvailable,
		CultureAndBenefits: notAvailable,
		RetrievedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	failures := 0
	for range calls {
		select {
		case r := <-ch:
			if r.err != nil {
				failures++
				slog.Warn("company_research: call failed",
					slog.String("company", company),
					slog.String("field", r.field),
					slog.Any("error", r.err))
				continue
			}
			switch r.field {
			case "overview":
				bundle.Overview = r.text
			case "news":
				bundle.RecentDevelopments = r.text
			case "culture":
				bundle.CultureAndBenefits = r.text
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failures == len(calls) {
		return nil, fmt.Errorf("company_research: all calls failed for %q", company)
	}

	engine.CacheStoreJSON(ctx, key, *bundle)
	return bundle, nil
}

// InvalidateCompany drops a company's cached bundle. Empty name clears all
// cached research (and everything else in L1 — acceptable, the cache only
// holds research bundles).
func InvalidateCompany(ctx context.Context, company string) {
	company = strings.TrimSpace(company)
	if company == "" {
		engine.CacheClear()
		return
	}
	engine.CacheDelete(ctx, researchCacheKey(company))
}

func researchCacheKey(company string) string {
	return engine.CacheKey("company_research", strings.ToLower(company))
}
