package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArgyPorgy/stx-names-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the registry tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Username{},
		&schema.Transfer{},
		&schema.Release{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		normalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// normalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func normalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// UpsertUsername creates or replaces the active record for a username.
// Conflict resolution is last-writer-wins on the primary key, which is what
// makes re-delivered register events idempotent.
func (s *pgStore) UpsertUsername(ctx context.Context, record *schema.Username) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "registered_at", "tx_id", "block_height", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert username: %w", err)
	}

	return nil
}

// GetUsername retrieves the active record for a username
func (s *pgStore) GetUsername(ctx context.Context, username string) (*schema.Username, error) {
	var record schema.Username
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get username: %w", err)
	}

	return &record, nil
}

// GetUsernameByOwner retrieves the active record held by an owner
func (s *pgStore) GetUsernameByOwner(ctx context.Context, owner string) (*schema.Username, error) {
	var record schema.Username
	err := s.db.WithContext(ctx).Where("owner = ?", owner).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get username by owner: %w", err)
	}

	return &record, nil
}

// ListUsernames retrieves active records ordered by registration time descending
func (s *pgStore) ListUsernames(ctx context.Context, limit, offset int) ([]*schema.Username, error) {
	var records []*schema.Username
	err := s.db.WithContext(ctx).
		Order("registered_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}

	return records, nil
}

// CountUsernames returns the number of active records
func (s *pgStore) CountUsernames(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Username{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count usernames: %w", err)
	}

	return count, nil
}

// UpdateUsernameOwner points a username at a new owner
func (s *pgStore) UpdateUsernameOwner(ctx context.Context, username, newOwner string) (*schema.Username, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Username{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"owner":      newOwner,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update username owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return s.GetUsername(ctx, username)
}

// DeleteUsername removes the active record for a username, returning the
// deleted record. Transfer history rows cascade away with it.
func (s *pgStore) DeleteUsername(ctx context.Context, username string) (*schema.Username, error) {
	record, err := s.GetUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	err = s.db.WithContext(ctx).Where("username = ?", username).Delete(&schema.Username{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete username: %w", err)
	}

	return record, nil
}

// InsertTransfer appends one transfer history record
func (s *pgStore) InsertTransfer(ctx context.Context, record *schema.Transfer) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	return nil
}

// InsertRelease appends one release history record
func (s *pgStore) InsertRelease(ctx context.Context, record *schema.Release) error {
	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to insert release: %w", err)
	}

	return nil
}

// ListRecentEvents retrieves the combined activity feed, newest first.
// Registrations read from the active table, so a registration disappears
// from the feed once its username is released.
func (s *pgStore) ListRecentEvents(ctx context.Context, limit int) ([]RecentEvent, error) {
	var events []RecentEvent
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			'registration' AS event_type,
			username,
			owner AS event_owner,
			tx_id,
			block_height,
			registered_at AS timestamp
		FROM usernames
		UNION ALL
		SELECT
			'transfer' AS event_type,
			username,
			to_owner AS event_owner,
			tx_id,
			block_height,
			timestamp
		FROM transfers
		UNION ALL
		SELECT
			'release' AS event_type,
			username,
			previous_owner AS event_owner,
			tx_id,
			block_height,
			timestamp
		FROM releases
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit).Scan(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}

	return events, nil
}

// IsTxApplied checks whether any stored row was produced by the given
// transaction. Used by the poller as a durable second line of defense when
// its in-memory seen-set is lost across restarts.
func (s *pgStore) IsTxApplied(ctx context.Context, txID string) (bool, error) {
	var applied bool
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			EXISTS (SELECT 1 FROM usernames WHERE tx_id = ?)
			OR EXISTS (SELECT 1 FROM transfers WHERE tx_id = ?)
			OR EXISTS (SELECT 1 FROM releases WHERE tx_id = ?)
	`, txID, txID, txID).Scan(&applied).Error
	if err != nil {
		return false, fmt.Errorf("failed to check tx: %w", err)
	}

	return applied, nil
}

// GetBlockCursor retrieves the last polled block height for a contract
func (s *pgStore) GetBlockCursor(ctx context.Context, contract string) (uint64, error) {
	key := fmt.Sprintf("block_cursor:%s", contract)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockHeight, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockHeight, nil
}

// SetBlockCursor stores the last polled block height for a contract
func (s *pgStore) SetBlockCursor(ctx context.Context, contract string, blockHeight uint64) error {
	kv := schema.KeyValueStore{
		Key:   fmt.Sprintf("block_cursor:%s", contract),
		Value: strconv.FormatUint(blockHeight, 10),
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}
