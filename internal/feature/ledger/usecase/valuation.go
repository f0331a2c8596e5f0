package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"invest_backend/internal/feature/ledger/domain/entity"
)

// PortfolioRow is the per-symbol valuation a user sees. It is derived
// on demand from a position and a quote and never persisted.
type PortfolioRow struct {
	Symbol        string
	Quantity      int64
	AvgCost       decimal.Decimal
	CurrentPrice  decimal.Decimal
	Invested      decimal.Decimal
	MarketValue   decimal.Decimal
	PnL           decimal.Decimal
	// Stale marks rows valued at average cost because no current
	// quote was available.
	Stale bool
}

// PortfolioSummary aggregates the rows of one owner's portfolio.
type PortfolioSummary struct {
	TotalInvested decimal.Decimal
	MarketValue   decimal.Decimal
	PnL           decimal.Decimal
	Holdings      int
	Rows          []PortfolioRow
}

// Summarize values a set of positions against current quotes.
// quoteFor returns the current price for a symbol and whether one is
// available; an unavailable quote degrades that row to its average cost
// and flags it stale instead of failing the whole report.
// PnL is exactly MarketValue minus TotalInvested. Rows come back sorted
// by symbol so the report is deterministic.
func Summarize(positions []entity.Position, quoteFor func(symbol string) (decimal.Decimal, bool)) PortfolioSummary {
	s := PortfolioSummary{
		TotalInvested: decimal.Zero,
		MarketValue:   decimal.Zero,
		PnL:           decimal.Zero,
		Rows:          make([]PortfolioRow, 0, len(positions)),
	}

	for _, p := range positions {
		if p.TotalQuantity <= 0 {
			continue
		}
		price, ok := quoteFor(p.Symbol)
		if !ok || price.Sign() <= 0 {
			price = p.AvgCost
			ok = false
		}

		invested := p.Invested()
		market := price.Mul(decimal.NewFromInt(p.TotalQuantity))
		s.Rows = append(s.Rows, PortfolioRow{
			Symbol:       p.Symbol,
			Quantity:     p.TotalQuantity,
			AvgCost:      p.AvgCost,
			CurrentPrice: price,
			Invested:     invested,
			MarketValue:  market,
			PnL:          market.Sub(invested),
			Stale:        !ok,
		})
		s.TotalInvested = s.TotalInvested.Add(invested)
		s.MarketValue = s.MarketValue.Add(market)
	}

	sort.Slice(s.Rows, func(i, j int) bool { return s.Rows[i].Symbol < s.Rows[j].Symbol })
	s.Holdings = len(s.Rows)
	s.PnL = s.MarketValue.Sub(s.TotalInvested)
	return s
}
