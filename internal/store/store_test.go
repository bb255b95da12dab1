package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/ArgyPorgy/stx-names-indexer/internal/store/schema"
)

const (
	TEST_OWNER_ALICE = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
	TEST_OWNER_BOB   = "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY7RX8QJ5SVTE"
	TEST_OWNER_CAROL = "SP1P72Z3704VMT3DMHPP2CB8TGQWGDBHD3RPR9GZS"
	TEST_CONTRACT    = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry"
)

func buildTestUsername(name, owner string, registeredAt int64, blockHeight uint64) *schema.Username {
	return &schema.Username{
		Username:     name,
		Owner:        owner,
		RegisteredAt: registeredAt,
		TxID:         fmt.Sprintf("0xreg-%s-%d", name, blockHeight),
		BlockHeight:  blockHeight,
	}
}

func buildTestTransfer(name, from, to string, timestamp int64, blockHeight uint64) *schema.Transfer {
	return &schema.Transfer{
		Username:    name,
		FromOwner:   from,
		ToOwner:     to,
		TxID:        fmt.Sprintf("0xxfer-%s-%d", name, blockHeight),
		BlockHeight: blockHeight,
		Timestamp:   timestamp,
		Raw:         datatypes.JSON([]byte(`{"kind":"transfer"}`)),
	}
}

func buildTestRelease(name, previousOwner string, timestamp int64, blockHeight uint64) *schema.Release {
	return &schema.Release{
		Username:      name,
		PreviousOwner: previousOwner,
		TxID:          fmt.Sprintf("0xrel-%s-%d", name, blockHeight),
		BlockHeight:   blockHeight,
		Timestamp:     timestamp,
	}
}

func testUpsertUsername(t *testing.T, store Store) {
	ctx := context.Background()

	record := buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)
	require.NoError(t, store.UpsertUsername(ctx, record))

	got, err := store.GetUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, TEST_OWNER_ALICE, got.Owner)
	assert.Equal(t, int64(1700000000), got.RegisteredAt)
	assert.Equal(t, record.TxID, got.TxID)
	assert.Equal(t, uint64(150000), got.BlockHeight)
	assert.False(t, got.CreatedAt.IsZero())

	// Re-registering the same name replaces the active record in place
	replacement := buildTestUsername("alice", TEST_OWNER_BOB, 1700000600, 150010)
	require.NoError(t, store.UpsertUsername(ctx, replacement))

	got, err = store.GetUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, TEST_OWNER_BOB, got.Owner)
	assert.Equal(t, int64(1700000600), got.RegisteredAt)
	assert.Equal(t, replacement.TxID, got.TxID)
	assert.Equal(t, uint64(150010), got.BlockHeight)

	count, err := store.CountUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func testGetUsernameAbsent(t *testing.T, store Store) {
	ctx := context.Background()

	got, err := store.GetUsername(ctx, "no-such-name")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.GetUsernameByOwner(ctx, TEST_OWNER_CAROL)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testGetUsernameByOwner(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))
	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("bob", TEST_OWNER_BOB, 1700000100, 150001)))

	got, err := store.GetUsernameByOwner(ctx, TEST_OWNER_BOB)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Username)
}

func testListAndCountUsernames(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))
	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("bob", TEST_OWNER_BOB, 1700000200, 150002)))
	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("carol", TEST_OWNER_CAROL, 1700000100, 150001)))

	count, err := store.CountUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Newest registration first
	records, err := store.ListUsernames(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "bob", records[0].Username)
	assert.Equal(t, "carol", records[1].Username)
	assert.Equal(t, "alice", records[2].Username)

	// Pagination
	records, err = store.ListUsernames(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "carol", records[0].Username)
}

func testUpdateUsernameOwner(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))

	updated, err := store.UpdateUsernameOwner(ctx, "alice", TEST_OWNER_BOB)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, TEST_OWNER_BOB, updated.Owner)
	// A pointer update does not rewrite the registration metadata
	assert.Equal(t, int64(1700000000), updated.RegisteredAt)

	// Absent username is reported as nil, not an error
	updated, err = store.UpdateUsernameOwner(ctx, "no-such-name", TEST_OWNER_BOB)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func testDeleteUsername(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))

	deleted, err := store.DeleteUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, TEST_OWNER_ALICE, deleted.Owner)

	got, err := store.GetUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = store.DeleteUsername(ctx, "no-such-name")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func testTransferHistoryCascade(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))
	transfer := buildTestTransfer("alice", TEST_OWNER_ALICE, TEST_OWNER_BOB, 1700000100, 150001)
	require.NoError(t, store.InsertTransfer(ctx, transfer))

	applied, err := store.IsTxApplied(ctx, transfer.TxID)
	require.NoError(t, err)
	assert.True(t, applied)

	// Deleting the username cascades its transfer history away
	_, err = store.DeleteUsername(ctx, "alice")
	require.NoError(t, err)

	applied, err = store.IsTxApplied(ctx, transfer.TxID)
	require.NoError(t, err)
	assert.False(t, applied)

	events, err := store.ListRecentEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func testReleaseSurvivesDelete(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))
	release := buildTestRelease("alice", TEST_OWNER_ALICE, 1700000200, 150002)
	require.NoError(t, store.InsertRelease(ctx, release))

	// The release record has no foreign key, so it outlives the
	// username row deleted in the same reconciliation step
	_, err := store.DeleteUsername(ctx, "alice")
	require.NoError(t, err)

	applied, err := store.IsTxApplied(ctx, release.TxID)
	require.NoError(t, err)
	assert.True(t, applied)

	events, err := store.ListRecentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "release", events[0].EventType)
	assert.Equal(t, "alice", events[0].Username)
	assert.Equal(t, TEST_OWNER_ALICE, events[0].EventOwner)
}

func testListRecentEvents(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)))
	require.NoError(t, store.InsertTransfer(ctx, buildTestTransfer("alice", TEST_OWNER_ALICE, TEST_OWNER_BOB, 1700000100, 150001)))
	require.NoError(t, store.UpsertUsername(ctx, buildTestUsername("carol", TEST_OWNER_CAROL, 1700000200, 150002)))
	require.NoError(t, store.InsertRelease(ctx, buildTestRelease("dave", TEST_OWNER_BOB, 1700000300, 150003)))

	events, err := store.ListRecentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 4)

	// Newest first across all three tables
	assert.Equal(t, "release", events[0].EventType)
	assert.Equal(t, "dave", events[0].Username)
	assert.Equal(t, TEST_OWNER_BOB, events[0].EventOwner)

	assert.Equal(t, "registration", events[1].EventType)
	assert.Equal(t, "carol", events[1].Username)

	assert.Equal(t, "transfer", events[2].EventType)
	assert.Equal(t, "alice", events[2].Username)
	assert.Equal(t, TEST_OWNER_BOB, events[2].EventOwner)

	assert.Equal(t, "registration", events[3].EventType)
	assert.Equal(t, "alice", events[3].Username)

	// Limit truncates from the tail
	events, err = store.ListRecentEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "dave", events[0].Username)
	assert.Equal(t, "carol", events[1].Username)
}

func testIsTxApplied(t *testing.T, store Store) {
	ctx := context.Background()

	username := buildTestUsername("alice", TEST_OWNER_ALICE, 1700000000, 150000)
	transfer := buildTestTransfer("alice", TEST_OWNER_ALICE, TEST_OWNER_BOB, 1700000100, 150001)
	release := buildTestRelease("bob", TEST_OWNER_BOB, 1700000200, 150002)

	require.NoError(t, store.UpsertUsername(ctx, username))
	require.NoError(t, store.InsertTransfer(ctx, transfer))
	require.NoError(t, store.InsertRelease(ctx, release))

	for _, txID := range []string{username.TxID, transfer.TxID, release.TxID} {
		applied, err := store.IsTxApplied(ctx, txID)
		require.NoError(t, err)
		assert.True(t, applied, txID)
	}

	applied, err := store.IsTxApplied(ctx, "0xunknown")
	require.NoError(t, err)
	assert.False(t, applied)
}

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()

	// Unset cursor reads as zero
	height, err := store.GetBlockCursor(ctx, TEST_CONTRACT)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), height)

	require.NoError(t, store.SetBlockCursor(ctx, TEST_CONTRACT, 150000))

	height, err = store.GetBlockCursor(ctx, TEST_CONTRACT)
	require.NoError(t, err)
	assert.Equal(t, uint64(150000), height)

	// Overwrite advances in place
	require.NoError(t, store.SetBlockCursor(ctx, TEST_CONTRACT, 150050))

	height, err = store.GetBlockCursor(ctx, TEST_CONTRACT)
	require.NoError(t, err)
	assert.Equal(t, uint64(150050), height)

	// Cursors are scoped per contract
	other := TEST_OWNER_BOB + ".other-registry"
	height, err = store.GetBlockCursor(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), height)
}

// RunStoreTests runs the full store suite against the given backend
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UpsertUsername", testUpsertUsername},
		{"GetUsernameAbsent", testGetUsernameAbsent},
		{"GetUsernameByOwner", testGetUsernameByOwner},
		{"ListAndCountUsernames", testListAndCountUsernames},
		{"UpdateUsernameOwner", testUpdateUsernameOwner},
		{"DeleteUsername", testDeleteUsername},
		{"TransferHistoryCascade", testTransferHistoryCascade},
		{"ReleaseSurvivesDelete", testReleaseSurvivesDelete},
		{"ListRecentEvents", testListRecentEvents},
		{"IsTxApplied", testIsTxApplied},
		{"BlockCursor", testBlockCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
