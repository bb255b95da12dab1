package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Release represents the releases table - an append-only record of one
// username being given up by its owner.
//
// Unlike transfers, the username column here is plain text with no foreign
// key: the release row is written in the same reconciliation step that
// deletes the parent username row, so a cascading constraint would destroy
// the record the moment it was created.
type Release struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username references the released name
	Username string `gorm:"column:username;not null;type:varchar(30);index:idx_releases_username"`
	// PreviousOwner is the principal that held the username until the release
	PreviousOwner string `gorm:"column:previous_owner;not null;type:varchar(255);index:idx_releases_previous_owner"`
	// TxID is the transaction hash of the release call
	TxID string `gorm:"column:tx_id;not null;type:varchar(255)"`
	// BlockHeight is the block the release was mined in
	BlockHeight uint64 `gorm:"column:block_height;not null;type:bigint"`
	// Timestamp is the block timestamp in Unix seconds
	Timestamp int64 `gorm:"column:timestamp;not null;type:bigint"`
	// Raw carries the originating normalized event as JSON for debugging
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is when this row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Release model
func (Release) TableName() string {
	return "releases"
}
