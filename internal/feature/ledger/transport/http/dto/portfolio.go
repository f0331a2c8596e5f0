package dto

import "github.com/shopspring/decimal"

// PortfolioRowItem is one valued holding in the portfolio response.
type PortfolioRowItem struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Invested     decimal.Decimal `json:"invested"`
	MarketValue  decimal.Decimal `json:"market_value"`
	PnL          decimal.Decimal `json:"pnl"`
	Stale        bool            `json:"stale,omitempty"`
}

// PortfolioResponse is the body of GET /portfolio: the valued rows plus
// the summary the dashboard header shows.
type PortfolioResponse struct {
	TotalInvested decimal.Decimal    `json:"total_invested"`
	MarketValue   decimal.Decimal    `json:"market_value"`
	PnL           decimal.Decimal    `json:"pnl"`
	Holdings      int                `json:"holdings"`
	Positions     []PortfolioRowItem `json:"positions"`
}
