// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

// AddWatchlistRequest is the body of POST /watchlist.
type AddWatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// WatchlistItem is one watched symbol in an API response.
type WatchlistItem struct {
	Symbol string `json:"symbol"`
}
