package store

import (
	"context"

	"github.com/ArgyPorgy/stx-names-indexer/internal/store/schema"
)

// RecentEvent is one row of the combined registration/transfer/release
// activity feed, ordered by event time descending
type RecentEvent struct {
	// EventType is one of "registration", "transfer", "release"
	EventType string `json:"event_type"`
	Username  string `json:"username"`
	// EventOwner is the principal the event left in control: the registrant,
	// the transfer recipient, or the releasing owner
	EventOwner  string `json:"event_owner"`
	TxID        string `json:"tx_id"`
	BlockHeight uint64 `json:"block_height"`
	// Timestamp is the block timestamp in Unix seconds
	Timestamp int64 `json:"timestamp"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertUsername creates or replaces the active record for a username
	UpsertUsername(ctx context.Context, record *schema.Username) error
	// GetUsername retrieves the active record for a username, nil if absent
	GetUsername(ctx context.Context, username string) (*schema.Username, error)
	// GetUsernameByOwner retrieves the active record held by an owner, nil if absent
	GetUsernameByOwner(ctx context.Context, owner string) (*schema.Username, error)
	// ListUsernames retrieves active records ordered by registration time descending
	ListUsernames(ctx context.Context, limit, offset int) ([]*schema.Username, error)
	// CountUsernames returns the number of active records
	CountUsernames(ctx context.Context) (int64, error)
	// UpdateUsernameOwner points a username at a new owner, nil if the record is absent
	UpdateUsernameOwner(ctx context.Context, username, newOwner string) (*schema.Username, error)
	// DeleteUsername removes the active record, returning it, nil if absent
	DeleteUsername(ctx context.Context, username string) (*schema.Username, error)
	// InsertTransfer appends one transfer history record
	InsertTransfer(ctx context.Context, record *schema.Transfer) error
	// InsertRelease appends one release history record
	InsertRelease(ctx context.Context, record *schema.Release) error
	// ListRecentEvents retrieves the combined activity feed, newest first
	ListRecentEvents(ctx context.Context, limit int) ([]RecentEvent, error)
	// IsTxApplied checks whether any stored row was produced by the given transaction
	IsTxApplied(ctx context.Context, txID string) (bool, error)
	// GetBlockCursor retrieves the last polled block height for a contract
	GetBlockCursor(ctx context.Context, contract string) (uint64, error)
	// SetBlockCursor stores the last polled block height for a contract
	SetBlockCursor(ctx context.Context, contract string, blockHeight uint64) error
}
