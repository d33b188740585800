// go_recruiter — AI-assisted job search assistant.
//
// Serves a chat-driven HTTP API and single-page UI (resume upload, job
// search, company research, application tracker) and optionally exposes the
// same capabilities as MCP tools on a separate port.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_recruiter/internal/assistserver"
	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/httpapi"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using process environment")
	}

	initEngine()

	httpAddr := env.Str("HTTP_ADDR", ":8080")
	mcpPort := env.Str("MCP_PORT", "")

	slog.Info("starting go_recruiter",
		slog.String("http_addr", httpAddr),
		slog.String("mcp_port", mcpPort),
	)

	if mcpPort != "" {
		server := mcp.NewServer(&mcp.Implementation{
			Name:    "go_recruiter",
			Version: version,
		}, nil)
		assistserver.RegisterTools(server)
		slog.Info("mcp tools registered", slog.Int("count", 8))

		go func() {
			if err := mcpserver.Run(server, mcpserver.Config{
				Name:         "go_recruiter",
				Version:      version,
				Port:         mcpPort,
				WriteTimeout: 600 * time.Second,
				Metrics:      engine.FormatMetrics,
			}); err != nil {
				slog.Error("mcp server failed", slog.Any("error", err))
			}
		}()
	}

	router := httpapi.NewRouter()
	if err := router.Run(httpAddr); err != nil {
		slog.Error("http server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 4096),
		LLMRateLimit:         env.Float("LLM_RATE_LIMIT", 2),
		LLMRateBurst:         env.Int("LLM_RATE_BURST", 5),
		DataDir:              env.Str("DATA_DIR", ""),
		MaxUploadBytes:       int64(env.Int("MAX_UPLOAD_BYTES", 5*1024*1024)),
		ParserAPIURL:         env.Str("PARSER_API_URL", ""),
		ParserAPIKey:         env.Str("PARSER_API_KEY", ""),
		ParseTimeout:         env.Duration("PARSE_TIMEOUT", 30*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
