package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

// Respond processes one chat turn: classify intent, dispatch to the matching
// collaborator, assemble a human-readable reply, and persist both sides of
// the exchange. Collaborator errors become an apologetic reply; a turn is
// never dropped.
func Respond(ctx context.Context, input engine.ChatInput) engine.ChatOutput {
	engine.IncrChatRequests()

	if err := AppendMessage(ctx, input.SessionID, "user", input.Message); err != nil {
		slog.Warn("chat: persist user message failed", slog.Any("error", err))
	}

	intent := ClassifyIntent(ctx, input.Message)
	reply := dispatch(ctx, intent, input)

	if err := AppendMessage(ctx, input.SessionID, "assistant", reply); err != nil {
		slog.Warn("chat: persist reply failed", slog.Any("error", err))
	}

	return engine.ChatOutput{Reply: reply, Intent: string(intent.Type)}
}

func dispatch(ctx context.Context, intent Intent, input engine.ChatInput) string {
	switch intent.Type {
	case IntentSearchJobs:
		return handleJobSearch(ctx, input)
	case IntentCompany:
		return handleCompanyResearch(ctx, intent.Company)
	case IntentTrack:
		return handleTracking(ctx, intent.Data)
	case IntentStats:
		return handleStatistics(ctx)
	default:
		return handleGeneral(ctx, input.Message)
	}
}

func handleJobSearch(ctx context.Context, input engine.ChatInput) string {
	resume, ok := CurrentResume(input.SessionID)
	if !ok {
		return "Please upload your resume first so I can help you find relevant jobs."
	}

	out, err := SearchJobs(ctx, resume, engine.SearchFilters{
		Location:  input.Location,
		Remote:    input.Remote,
		MinSalary: input.MinSalary,
	})
	if err != nil {
		slog.Warn("chat: job search failed", slog.Any("error", err))
		return apology(err)
	}
	if len(out.Jobs) == 0 {
		return "I couldn't find any matching jobs at the moment. Try adjusting your search criteria."
	}
	return FormatJobs(out.Jobs)
}

func handleCompanyResearch(ctx context.Context, company string) string {
	if strings.TrimSpace(company) == "" {
		return "Which company would you like me to research? Just mention its name."
	}
	bundle, err := ResearchCompany(ctx, company)
	if err != nil {
		slog.Warn("chat: company research failed",
			slog.String("company", company), slog.Any("error", err))
		return fmt.Sprintf("Sorry, I couldn't gather information about %s at the moment.", company)
	}
	return FormatBundle(bundle)
}

func handleTracking(ctx context.Context, data *TrackData) string {
	if data == nil {
		data = &TrackData{Action: "view"}
	}
	switch data.Action {
	case "add":
		if data.Company == "" || data.Position == "" {
			return "To track an application, tell me the company and the position, e.g. \"track my application for Backend Engineer at Stripe\"."
		}
		app, err := AddApplication(ctx, engine.ApplicationAddInput{
			Company:  data.Company,
			Position: data.Position,
			Status:   data.Status,
			Notes:    data.Notes,
		})
		if err != nil {
			slog.Warn("chat: application add failed", slog.Any("error", err))
			return apology(err)
		}
		return fmt.Sprintf("Application for %s at %s has been tracked (id=%d).", app.Position, app.Company, app.ID)

	case "update":
		if data.ID <= 0 {
			return "Which application should I update? Give me its id (say \"view my applications\" to see them)."
		}
		app, err := UpdateApplication(ctx, engine.ApplicationUpdateInput{
			ID:     data.ID,
			Status: data.Status,
			Notes:  data.Notes,
		})
		if err != nil {
			slog.Warn("chat: application update failed", slog.Any("error", err))
			return apology(err)
		}
		return fmt.Sprintf("Application #%d has been updated (status: %s).", app.ID, app.Status)

	case "view":
		apps, err := ListApplications(ctx, engine.ApplicationListInput{})
		if err != nil {
			slog.Warn("chat: application list failed", slog.Any("error", err))
			return apology(err)
		}
		return FormatApplications(apps)

	default:
		return "I'm not sure what you want to do with the application. Please specify if you want to add, update, or view applications."
	}
}

func handleStatistics(ctx context.Context) string {
	stats, err := ApplicationStatistics(ctx)
	if err != nil {
		slog.Warn("chat: statistics failed", slog.Any("error", err))
		return apology(err)
	}
	return FormatStats(stats)
}

// generalReply is the JSON envelope the general-chat prompt asks for.
type generalReply struct {
	Answer string `json:"answer"`
}

func handleGeneral(ctx context.Context, message string) string {
	out, raw, err := engine.ParseJSONReply[generalReply](ctx, engine.GeneralChatSystemPrompt, message, 0.7, engine.Cfg.LLMMaxTokens)
	if err != nil {
		slog.Warn("chat: general reply failed", slog.Any("error", err))
	}
	return salvageGeneralReply(out, raw)
}

// salvageGeneralReply picks the best available reply text: the parsed
// answer, the answer dug out of malformed JSON, the raw prose of a model
// that ignored the envelope instruction, or the canned fallback.
func salvageGeneralReply(out *generalReply, raw string) string {
	if out != nil && strings.TrimSpace(out.Answer) != "" {
		return out.Answer
	}
	if answer := engine.ExtractJSONAnswer(raw); answer != "" {
		return answer
	}
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.HasPrefix(raw, "{") {
		return raw
	}
	return engine.GeneralChatFallback
}

func apology(err error) string {
	return fmt.Sprintf("I apologize, but I encountered an error: %v", err)
}

// --- Reply formatting ---

// FormatJobs renders ranked job listings for the chat pane.
func FormatJobs(jobs []engine.JobListing) string {
	var sb strings.Builder
	sb.WriteString("Here are the top matching jobs for your profile:\n")
	for _, job := range jobs {
		fmt.Fprintf(&sb, "\n🎯 %s\n🏢 %s\n📍 %s\n", job.Title, job.Company, job.Location)
		if job.Salary != "" {
			fmt.Fprintf(&sb, "💰 %s\n", job.Salary)
		}
		if job.Description != "" {
			fmt.Fprintf(&sb, "\n%s\n", job.Description)
		}
		if job.URL != "" {
			fmt.Fprintf(&sb, "🔗 %s\n", job.URL)
		}
		fmt.Fprintf(&sb, "Match Score: %.1f\n-------------------\n", job.MatchScore)
	}
	return sb.String()
}

// FormatBundle renders a company research bundle.
func FormatBundle(b *engine.ResearchBundle) string {
	return fmt.Sprintf(`Here's what I found about %s:

📊 Company Overview:
%s

🔄 Recent Developments:
%s

👥 Culture and Benefits:
%s
`, b.Company, b.Overview, b.RecentDevelopments, b.CultureAndBenefits)
}

// FormatApplications renders the tracked applications list.
func FormatApplications(apps []Application) string {
	if len(apps) == 0 {
		return "No applications found."
	}
	var sb strings.Builder
	sb.WriteString("Here are your tracked applications:\n")
	for _, app := range apps {
		fmt.Fprintf(&sb, "\n📝 %s at %s (id=%d)\nStatus: %s\nApplied: %s\nLast Updated: %s\n",
			app.Position, app.Company, app.ID, app.Status,
			shortDate(app.AppliedDate), shortDate(app.LastUpdated))
		if app.Notes != "" {
			fmt.Fprintf(&sb, "Notes: %s\n", app.Notes)
		}
		sb.WriteString("-------------------\n")
	}
	return sb.String()
}

// FormatStats renders the tracker statistics block.
func FormatStats(stats *engine.ApplicationStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Application Statistics:\n\nTotal Applications: %d\n\nStatus Breakdown:\n", stats.Total)
	for _, status := range []ApplicationStatus{StatusApplied, StatusInterview, StatusOffer, StatusAccepted, StatusRejected} {
		if n, ok := stats.StatusBreakdown[string(status)]; ok {
			fmt.Fprintf(&sb, "- %s: %d\n", status, n)
		}
	}
	fmt.Fprintf(&sb, "\nSuccess Rate: %.1f%%", stats.SuccessRate*100)
	return sb.String()
}

// shortDate trims an RFC 3339 timestamp to its date part.
func shortDate(ts string) string {
	if idx := strings.IndexByte(ts, 'T'); idx > 0 {
		return ts[:idx]
	}
	return ts
}
