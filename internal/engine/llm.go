package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
	"golang.org/x/time/rate"
)

// limiter throttles completion calls so a chatty session cannot burn the
// API budget. nil = unlimited.
var limiter *rate.Limiter

func initLimiter() {
	if cfg.LLMRateLimit > 0 {
		burst := cfg.LLMRateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.LLMRateLimit), burst)
	} else {
		limiter = nil
	}
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
// The system argument may be empty.
func CallLLM(ctx context.Context, system, prompt string) (string, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	IncrLLMCalls()
	resp, err := cfg.LLMClient.Complete(ctx, system, prompt)
	if err != nil {
		IncrLLMErrors()
		return "", err
	}
	return stripFences(resp), nil
}

// CallLLMWith sends a prompt with per-call temperature and token overrides.
func CallLLMWith(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	IncrLLMCalls()
	resp, err := cfg.LLMClient.Complete(ctx, system, prompt,
		llm.WithChatTemperature(temperature),
		llm.WithChatMaxTokens(maxTokens),
	)
	if err != nil {
		IncrLLMErrors()
		return "", err
	}
	return stripFences(resp), nil
}

// ParseJSONReply sends a prompt whose system instruction demands a JSON
// reply and unmarshals it into T. The raw reply comes back alongside the
// parse error so callers can salvage something readable from malformed
// output.
func ParseJSONReply[T any](ctx context.Context, system, prompt string, temperature float64, maxTokens int) (*T, string, error) {
	raw, err := CallLLMWith(ctx, system, prompt, temperature, maxTokens)
	if err != nil {
		return nil, "", err
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, raw, fmt.Errorf("llm reply parse: %w (raw: %s)", err, TruncateRunes(raw, 200, "..."))
	}
	return &out, raw, nil
}

// ExtractJSONAnswer extracts the "answer" field from malformed JSON
// where the value may contain unescaped newlines or special characters.
func ExtractJSONAnswer(raw string) string {
	prefix := `"answer"`
	idx := strings.Index(raw, prefix)
	if idx < 0 {
		return ""
	}
	rest := raw[idx+len(prefix):]
	rest = strings.TrimSpace(rest)
	if len(rest) == 0 || rest[0] != ':' {
		return ""
	}
	rest = strings.TrimSpace(rest[1:])
	if len(rest) == 0 || rest[0] != '"' {
		return ""
	}
	rest = rest[1:] // skip opening quote

	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		if rest[i] == '\\' && i+1 < len(rest) {
			if rest[i+1] == '"' {
				sb.WriteByte('"')
				i++
				continue
			}
			if rest[i+1] == 'n' {
				sb.WriteByte('\n')
				i++
				continue
			}
			sb.WriteByte(rest[i])
			continue
		}
		if rest[i] == '"' {
			return sb.String()
		}
		sb.WriteByte(rest[i])
	}
	if sb.Len() > 0 {
		return sb.String()
	}
	return ""
}
