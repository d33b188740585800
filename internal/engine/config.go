package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMRateLimit       float64 // completion calls per second, 0 = unlimited
	LLMRateBurst       int

	DataDir        string // applications JSON + chat history DB live here
	MaxUploadBytes int64  // resume upload cap

	ParserAPIURL string // remote document-parser service; empty = local extraction
	ParserAPIKey string
	ParseTimeout time.Duration

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	LLMClient  *llm.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (assist).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
	initLimiter()
}
