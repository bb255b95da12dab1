package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Transfer represents the transfers table - an append-only record of one
// username changing hands.
//
// The foreign key to usernames cascades on delete, so releasing a username
// also removes its transfer history. This mirrors the registry's current
// schema; see DESIGN.md for the trade-off.
type Transfer struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username references the transferred name
	Username string `gorm:"column:username;not null;type:varchar(30);index:idx_transfers_username"`
	// FromOwner is the principal that held the username before the transfer
	FromOwner string `gorm:"column:from_owner;not null;type:varchar(255);index:idx_transfers_from_owner"`
	// ToOwner is the principal receiving the username
	ToOwner string `gorm:"column:to_owner;not null;type:varchar(255);index:idx_transfers_to_owner"`
	// TxID is the transaction hash of the transfer call
	TxID string `gorm:"column:tx_id;not null;type:varchar(255)"`
	// BlockHeight is the block the transfer was mined in
	BlockHeight uint64 `gorm:"column:block_height;not null;type:bigint"`
	// Timestamp is the block timestamp in Unix seconds
	Timestamp int64 `gorm:"column:timestamp;not null;type:bigint"`
	// Raw carries the originating normalized event as JSON for debugging
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is when this row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
