// Package dto defines data transfer objects for the ledger HTTP API.
package dto

import "github.com/shopspring/decimal"

// SubmitTransactionRequest is the body of POST /transactions. The price
// is deliberately absent: it is captured from the quote provider at
// submission time.
type SubmitTransactionRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=BUY SELL"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// TransactionItem is one ledger transaction in an API response.
type TransactionItem struct {
	ID        uint            `json:"id"`
	Symbol    string          `json:"symbol"`
	Kind      string          `json:"kind"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt string          `json:"created_at"`
}

// SubmitTransactionResponse confirms a committed submission.
type SubmitTransactionResponse struct {
	Status      string          `json:"status"`
	Transaction TransactionItem `json:"transaction"`
}
