package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"invest_backend/internal/feature/ledger/usecase"
	"invest_backend/internal/shared/ratelimiter"
)

// priceResponse is the /price payload. On failure the API answers 200
// with status "error" and a message instead of an HTTP error code.
type priceResponse struct {
	Price   string `json:"price"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Quotes fetches last-trade prices from the Twelve Data /price
// endpoint. Every failure mode, timeout included, surfaces as
// usecase.ErrQuoteUnavailable so the ledger can treat the provider as
// a single transient dependency.
type Quotes struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.QuoteProvider = (*Quotes)(nil)

// NewQuotes creates a Quotes provider with the given configuration,
// HTTP client and rate limiter. A nil limiter disables throttling.
func NewQuotes(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Quotes {
	return &Quotes{cfg: cfg, client: client, limiter: limiter}
}

// GetQuote returns the current price for the symbol.
func (q *Quotes) GetQuote(ctx context.Context, sym string) (decimal.Decimal, error) {
	if q.limiter != nil {
		q.limiter.WaitIfNeeded()
	}

	params := url.Values{}
	params.Set("symbol", sym)
	params.Set("apikey", q.cfg.APIKey)
	u := fmt.Sprintf("%s/price?%s", q.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", usecase.ErrQuoteUnavailable, err)
	}

	res, err := q.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", usecase.ErrQuoteUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return decimal.Zero, fmt.Errorf("%w: twelvedata http %d", usecase.ErrQuoteUnavailable, res.StatusCode)
	}

	var body priceResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode response: %v", usecase.ErrQuoteUnavailable, err)
	}
	if body.Status == "error" {
		return decimal.Zero, fmt.Errorf("%w: twelvedata: %s", usecase.ErrQuoteUnavailable, body.Message)
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: parse price %q: %v", usecase.ErrQuoteUnavailable, body.Price, err)
	}
	if price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: non-positive price %s for %s", usecase.ErrQuoteUnavailable, price, sym)
	}
	return price, nil
}
