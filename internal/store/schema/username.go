package schema

import "time"

// Username represents the usernames table - the active ownership record for
// one registered username
type Username struct {
	// Username is the registry name itself and the primary key (3-30 chars,
	// lowercase alphanumeric/underscore/hyphen)
	Username string `gorm:"column:username;primaryKey;type:varchar(30)"`
	// Owner is the Stacks principal currently holding the username
	Owner string `gorm:"column:owner;not null;type:varchar(255);index:idx_usernames_owner"`
	// RegisteredAt is the block timestamp of the registration in Unix seconds
	RegisteredAt int64 `gorm:"column:registered_at;not null;type:bigint;index:idx_usernames_registered_at"`
	// TxID is the hash of the latest transaction that mutated this record
	TxID string `gorm:"column:tx_id;not null;type:varchar(255)"`
	// BlockHeight is the block of the latest mutating transaction
	BlockHeight uint64 `gorm:"column:block_height;not null;type:bigint"`
	// CreatedAt is when this row was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is when this row was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Transfers []Transfer `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Username model
func (Username) TableName() string {
	return "usernames"
}
