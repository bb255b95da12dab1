// Package reconcile applies normalized username-registry events to the
// ledger store, enforcing the idempotency and ownership invariants of the
// active-record table.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ArgyPorgy/stx-names-indexer/internal/domain"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store/schema"
)

// Engine applies normalized events to the ledger store
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// Apply reconciles one event against current stored state. The bool
	// reports whether a mutation was applied; false with a nil error means
	// the event was skipped (unresolvable prior state or unknown kind).
	// Storage faults are returned to the caller and never retried here.
	Apply(ctx context.Context, event domain.NormalizedEvent) (bool, error)
}

type engine struct {
	store store.Store
}

// NewEngine creates a reconciliation engine over the given store
func NewEngine(st store.Store) Engine {
	return &engine{store: st}
}

// Apply reconciles one normalized event
func (e *engine) Apply(ctx context.Context, event domain.NormalizedEvent) (bool, error) {
	switch event.Kind {
	case domain.EventKindRegister:
		return e.applyRegister(ctx, event)
	case domain.EventKindTransfer:
		return e.applyTransfer(ctx, event)
	case domain.EventKindRelease:
		return e.applyRelease(ctx, event)
	default:
		logger.WarnCtx(ctx, "Skipping event of unknown kind",
			zap.String("kind", string(event.Kind)),
			zap.String("tx_id", event.TxID))
		return false, nil
	}
}

// applyRegister upserts the active record. Last-writer-wins on the username
// key makes re-delivery of the same register event converge to the same
// state, and lets a name be re-registered after a release.
func (e *engine) applyRegister(ctx context.Context, event domain.NormalizedEvent) (bool, error) {
	record := &schema.Username{
		Username:     event.Username,
		Owner:        event.Sender,
		RegisteredAt: event.Timestamp,
		TxID:         event.TxID,
		BlockHeight:  event.BlockHeight,
	}

	if err := e.store.UpsertUsername(ctx, record); err != nil {
		return false, fmt.Errorf("failed to apply register for %q: %w", event.Username, err)
	}

	logger.InfoCtx(ctx, "Registered username",
		zap.String("username", event.Username),
		zap.String("owner", event.Sender),
		zap.String("tx_id", event.TxID),
		zap.Uint64("block_height", event.BlockHeight))

	return true, nil
}

// applyTransfer records the hand-over and repoints the active record. The
// history insert happens before the pointer mutation so a crash between the
// two leaves an accurate history with a stale pointer, never the reverse.
func (e *engine) applyTransfer(ctx context.Context, event domain.NormalizedEvent) (bool, error) {
	current, err := e.store.GetUsername(ctx, event.Username)
	if err != nil {
		return false, fmt.Errorf("failed to read current owner of %q: %w", event.Username, err)
	}
	if current == nil {
		// Out-of-order or partial delivery; the from-owner cannot be resolved
		logger.WarnCtx(ctx, "Skipping transfer for unknown username",
			zap.String("username", event.Username),
			zap.String("tx_id", event.TxID))
		return false, nil
	}

	transfer := &schema.Transfer{
		Username:    event.Username,
		FromOwner:   current.Owner,
		ToOwner:     event.NewOwner,
		TxID:        event.TxID,
		BlockHeight: event.BlockHeight,
		Timestamp:   event.Timestamp,
		Raw:         marshalRaw(event),
	}
	if err := e.store.InsertTransfer(ctx, transfer); err != nil {
		return false, fmt.Errorf("failed to record transfer of %q: %w", event.Username, err)
	}

	if _, err := e.store.UpdateUsernameOwner(ctx, event.Username, event.NewOwner); err != nil {
		return false, fmt.Errorf("failed to update owner of %q: %w", event.Username, err)
	}

	logger.InfoCtx(ctx, "Transferred username",
		zap.String("username", event.Username),
		zap.String("from_owner", current.Owner),
		zap.String("to_owner", event.NewOwner),
		zap.String("tx_id", event.TxID))

	return true, nil
}

// applyRelease records the give-up and deletes the active record. Like
// transfer, history is written before the destructive step.
func (e *engine) applyRelease(ctx context.Context, event domain.NormalizedEvent) (bool, error) {
	current, err := e.store.GetUsername(ctx, event.Username)
	if err != nil {
		return false, fmt.Errorf("failed to read current owner of %q: %w", event.Username, err)
	}
	if current == nil {
		logger.WarnCtx(ctx, "Skipping release for unknown username",
			zap.String("username", event.Username),
			zap.String("tx_id", event.TxID))
		return false, nil
	}

	release := &schema.Release{
		Username:      event.Username,
		PreviousOwner: current.Owner,
		TxID:          event.TxID,
		BlockHeight:   event.BlockHeight,
		Timestamp:     event.Timestamp,
		Raw:           marshalRaw(event),
	}
	if err := e.store.InsertRelease(ctx, release); err != nil {
		return false, fmt.Errorf("failed to record release of %q: %w", event.Username, err)
	}

	if _, err := e.store.DeleteUsername(ctx, event.Username); err != nil {
		return false, fmt.Errorf("failed to delete username %q: %w", event.Username, err)
	}

	logger.InfoCtx(ctx, "Released username",
		zap.String("username", event.Username),
		zap.String("previous_owner", current.Owner),
		zap.String("tx_id", event.TxID))

	return true, nil
}

// marshalRaw serializes the event for the history tables' debug column.
// NormalizedEvent has no unmarshalable fields, so the error is ignored.
func marshalRaw(event domain.NormalizedEvent) []byte {
	raw, _ := json.Marshal(event)
	return raw
}
