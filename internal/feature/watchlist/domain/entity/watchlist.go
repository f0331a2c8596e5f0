// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// WatchlistEntry is one owner+symbol pair a user keeps an eye on.
// It carries no quantity semantics; uniqueness is enforced per owner.
type WatchlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:watch_owner_symbol,priority:1"`
	Symbol    string    `gorm:"size:20;not null;uniqueIndex:watch_owner_symbol,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}
