package assist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

// IntentType is the coarse category the chat router assigns to a message.
type IntentType string

const (
	IntentSearchJobs IntentType = "search_jobs"
	IntentCompany    IntentType = "company_info"
	IntentTrack      IntentType = "track_application"
	IntentStats      IntentType = "get_stats"
	IntentGeneral    IntentType = "general"
)

// TrackData carries the tracker operation extracted from a message.
type TrackData struct {
	Action   string `json:"action"` // add, update, view
	ID       int64  `json:"id,omitempty"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Status   string `json:"status,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Intent is the classified user intent for one chat turn.
type Intent struct {
	Type    IntentType `json:"type"`
	Company string     `json:"company,omitempty"`
	Data    *TrackData `json:"data,omitempty"`
}

// ClassifyIntent asks the completion API to classify the message and falls
// back to keyword matching when the API fails or returns malformed JSON.
func ClassifyIntent(ctx context.Context, message string) Intent {
	intent, raw, err := engine.ParseJSONReply[Intent](ctx, engine.IntentSystemPrompt, message, 0.3, 300)
	if err != nil {
		slog.Warn("chat: intent call failed, using fallback",
			slog.String("raw", engine.TruncateRunes(raw, 120, "...")),
			slog.Any("error", err))
		engine.IncrIntentFallbacks()
		return FallbackIntent(message)
	}
	if !validIntentType(intent.Type) {
		slog.Debug("chat: unknown intent type, using fallback",
			slog.String("type", string(intent.Type)))
		engine.IncrIntentFallbacks()
		return FallbackIntent(message)
	}
	return *intent
}

func validIntentType(t IntentType) bool {
	switch t {
	case IntentSearchJobs, IntentCompany, IntentTrack, IntentStats, IntentGeneral:
		return true
	}
	return false
}

// FallbackIntent classifies a message by simple pattern matching.
// Pure string matching, no IO — used when the completion API is down or
// returns something unparseable.
func FallbackIntent(message string) Intent {
	m := strings.ToLower(message)

	if strings.Contains(m, "stat") || strings.Contains(m, "progress") || strings.Contains(m, "success rate") {
		return Intent{Type: IntentStats}
	}

	searchHit := strings.Contains(m, "search") || strings.Contains(m, "find") || strings.Contains(m, "looking for")
	jobHit := strings.Contains(m, "job") || strings.Contains(m, "position") || strings.Contains(m, "opening") || strings.Contains(m, "vacanc")
	if searchHit && jobHit {
		return Intent{Type: IntentSearchJobs}
	}

	if strings.Contains(m, "application") || strings.Contains(m, "track") {
		return Intent{Type: IntentTrack, Data: extractTrackData(m)}
	}

	if strings.Contains(m, "company") || strings.Contains(m, "research") || strings.Contains(m, "tell me about") {
		return Intent{Type: IntentCompany, Company: extractCompanyName(message)}
	}

	return Intent{Type: IntentGeneral}
}

// extractTrackData guesses the tracker action from the message.
func extractTrackData(lower string) *TrackData {
	switch {
	case strings.Contains(lower, "add") || strings.Contains(lower, "new"):
		return &TrackData{Action: "add"}
	case strings.Contains(lower, "update") || strings.Contains(lower, "change") || strings.Contains(lower, "move"):
		return &TrackData{Action: "update"}
	default:
		return &TrackData{Action: "view"}
	}
}

// extractCompanyName pulls a company name out of a message like
// "tell me about Stripe" or "research Acme Corp". Best effort; the LLM path
// handles the hard cases.
func extractCompanyName(message string) string {
	lower := strings.ToLower(message)
	for _, marker := range []string{"tell me about ", "about ", "research ", "company "} {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(message[idx+len(marker):])
		rest = strings.Trim(rest, ".!?")
		// Drop trailing filler like "... company culture".
		if cut := strings.IndexAny(rest, ",;\n"); cut >= 0 {
			rest = rest[:cut]
		}
		rest = strings.TrimSpace(rest)
		if rest != "" {
			return rest
		}
	}
	return ""
}
