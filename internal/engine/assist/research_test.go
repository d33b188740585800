package assist

import (
	"context"
	"testing"
	"time"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

func TestResearchCacheKey(t *testing.T) {
	// Case-insensitive on company name.
	if researchCacheKey("Stripe") != researchCacheKey("stripe") {
		t.Error("cache key must be case-insensitive")
	}
	if researchCacheKey("Stripe") == researchCacheKey("Square") {
		t.Error("different companies must get different keys")
	}
}

func TestResearchCompany_EmptyName(t *testing.T) {
	if _, err := ResearchCompany(context.Background(), "   "); err == nil {
		t.Error("expected error for blank company name")
	}
}

func TestResearchCompany_CacheHit(t *testing.T) {
	engine.Init(engine.Config{})
	engine.InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	// Pre-populate the cache; no completion client is configured, so a miss
	// would fail the call.
	want := engine.ResearchBundle{
		Company:            "Acme",
		Overview:           "Makes everything.",
		RecentDevelopments: "New anvil line.",
		CultureAndBenefits: "Coyote-friendly.",
		RetrievedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	engine.CacheStoreJSON(ctx, researchCacheKey("Acme"), want)

	got, err := ResearchCompany(ctx, "acme")
	if err != nil {
		t.Fatalf("ResearchCompany error: %v", err)
	}
	if got.Overview != want.Overview {
		t.Errorf("overview = %q, want %q", got.Overview, want.Overview)
	}
}

func TestInvalidateCompany(t *testing.T) {
	engine.Init(engine.Config{})
	engine.InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	bundle := engine.ResearchBundle{Company: "Acme", Overview: "x"}
	engine.CacheStoreJSON(ctx, researchCacheKey("Acme"), bundle)

	InvalidateCompany(ctx, "ACME")
	if _, ok := engine.CacheLoadJSON[engine.ResearchBundle](ctx, researchCacheKey("Acme")); ok {
		t.Error("bundle should be gone after invalidation")
	}
}
