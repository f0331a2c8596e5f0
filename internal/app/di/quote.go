// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"time"

	infrahttp "invest_backend/internal/platform/http"
	"invest_backend/internal/platform/quote/twelvedata"
	"invest_backend/internal/shared/ratelimiter"
)

// twelveDataFreeTierLimit is the per-minute call quota of the free
// plan.
const twelveDataFreeTierLimit = 8

// NewQuoteProvider creates a fully configured Twelve Data quote
// provider: env-based config, timeout-bounded HTTP client and a rate
// limiter matched to the free tier.
func NewQuoteProvider() *twelvedata.Quotes {
	cfg := twelvedata.LoadConfig()
	client := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(twelveDataFreeTierLimit, time.Minute)
	return twelvedata.NewQuotes(cfg, client, limiter)
}
