// Package dto defines the REST API response shapes.
package dto

import (
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store/schema"
)

// Username is the API representation of an active username record
type Username struct {
	Username     string `json:"username"`
	Owner        string `json:"owner"`
	RegisteredAt int64  `json:"registered_at"`
	TxID         string `json:"tx_id"`
	BlockHeight  uint64 `json:"block_height"`
}

// UsernameFromSchema maps a stored record to its API shape
func UsernameFromSchema(record *schema.Username) *Username {
	if record == nil {
		return nil
	}
	return &Username{
		Username:     record.Username,
		Owner:        record.Owner,
		RegisteredAt: record.RegisteredAt,
		TxID:         record.TxID,
		BlockHeight:  record.BlockHeight,
	}
}

// UsernameList is the paginated response for username listings
type UsernameList struct {
	Results []*Username `json:"results"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}

// RecentEvents wraps the combined activity feed
type RecentEvents struct {
	Results []store.RecentEvent `json:"results"`
}

// Stats summarizes the registry's current state
type Stats struct {
	TotalUsernames int64 `json:"total_usernames"`
}

// WebhookAck is the acknowledgement returned to chainhook deliveries
type WebhookAck struct {
	Success bool `json:"success"`
	Applied int  `json:"applied"`
	Skipped int  `json:"skipped"`
}

// InsertUsernameRequest is the debug-insert request body
type InsertUsernameRequest struct {
	Username    string `json:"username" binding:"required"`
	Owner       string `json:"owner" binding:"required"`
	TxID        string `json:"tx_id"`
	BlockHeight uint64 `json:"block_height"`
	Timestamp   int64  `json:"timestamp"`
}
