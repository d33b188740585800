package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ChatRequests      atomic.Int64
	IntentFallbacks   atomic.Int64
	LLMCalls          atomic.Int64
	LLMErrors         atomic.Int64
	JobSearches       atomic.Int64
	ResearchRequests  atomic.Int64
	ResumeUploads     atomic.Int64
	ParserAPIRequests atomic.Int64
	TrackerOps        atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"chat_requests":       metrics.ChatRequests.Load(),
		"intent_fallbacks":    metrics.IntentFallbacks.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
		"job_searches":        metrics.JobSearches.Load(),
		"research_requests":   metrics.ResearchRequests.Load(),
		"resume_uploads":      metrics.ResumeUploads.Load(),
		"parser_api_requests": metrics.ParserAPIRequests.Load(),
		"tracker_ops":         metrics.TrackerOps.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"chat_requests", "intent_fallbacks",
		"llm_calls", "llm_errors",
		"job_searches", "research_requests",
		"resume_uploads", "parser_api_requests", "tracker_ops",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for this package and the assist sub-package.
func IncrChatRequests()      { metrics.ChatRequests.Add(1) }
func IncrIntentFallbacks()   { metrics.IntentFallbacks.Add(1) }
func IncrLLMCalls()          { metrics.LLMCalls.Add(1) }
func IncrLLMErrors()         { metrics.LLMErrors.Add(1) }
func IncrJobSearches()       { metrics.JobSearches.Add(1) }
func IncrResearchRequests()  { metrics.ResearchRequests.Add(1) }
func IncrResumeUploads()     { metrics.ResumeUploads.Add(1) }
func IncrParserAPIRequests() { metrics.ParserAPIRequests.Add(1) }
func IncrTrackerOps()        { metrics.TrackerOps.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
