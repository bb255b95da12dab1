// Package poller backfills username-registry events by polling the Hiro
// Stacks API for contract-call transactions, covering gaps when webhook
// delivery was down.
package poller

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ArgyPorgy/stx-names-indexer/internal/adapter"
	"github.com/ArgyPorgy/stx-names-indexer/internal/clarity"
	"github.com/ArgyPorgy/stx-names-indexer/internal/domain"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
	"github.com/ArgyPorgy/stx-names-indexer/internal/messaging"
	"github.com/ArgyPorgy/stx-names-indexer/internal/providers/stacks"
	"github.com/ArgyPorgy/stx-names-indexer/internal/reconcile"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
)

// Config holds configuration for the transaction poller
type Config struct {
	// Contract is the fully qualified contract principal to watch
	Contract string
	// Interval is the time between poll cycles
	Interval time.Duration
	// PageSize is the number of transactions fetched per cycle
	PageSize int
}

// Poller defines the interface for the transaction poller
//
//go:generate mockgen -source=poller.go -destination=../mocks/poller.go -package=mocks -mock_names=Poller=MockPoller
type Poller interface {
	// Start begins the poll loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the poller
	Stop(ctx context.Context) error
}

// poller implements Poller over the Hiro address-transactions API
type poller struct {
	config    Config
	client    stacks.Client
	engine    reconcile.Engine
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock

	// seen dedups transactions within the process lifetime; the block cursor
	// plus IsTxApplied covers transactions applied before a restart
	seen      map[string]struct{}
	cursor    uint64
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewPoller creates a new transaction poller. The publisher may be nil when
// no broker is configured.
func NewPoller(
	cfg Config,
	client stacks.Client,
	engine reconcile.Engine,
	st store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Poller {
	return &poller{
		config:    cfg,
		client:    client,
		engine:    engine,
		store:     st,
		publisher: publisher,
		clock:     clock,
		seen:      make(map[string]struct{}),
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start begins the poll loop
func (p *poller) Start(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("poller already running")
	}
	defer func() {
		p.running.Store(false)
		close(p.stoppedCh)
	}()

	cursor, err := p.store.GetBlockCursor(ctx, p.config.Contract)
	if err != nil {
		return fmt.Errorf("failed to get block cursor: %w", err)
	}
	p.cursor = cursor

	logger.InfoCtx(ctx, "Starting transaction poller",
		zap.String("contract", p.config.Contract),
		zap.Duration("interval", p.config.Interval),
		zap.Uint64("block_cursor", cursor))

	for {
		if err := p.pollOnce(ctx); err != nil {
			// A failed cycle is retried on the next tick
			logger.WarnCtx(ctx, "Poll cycle failed",
				zap.String("contract", p.config.Contract),
				zap.Error(err))
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Transaction poller stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-p.stopChan:
			logger.InfoCtx(ctx, "Transaction poller stop requested")
			return nil
		case <-p.clock.After(p.config.Interval):
		}
	}
}

// Stop gracefully stops the poller with timeout support
func (p *poller) Stop(ctx context.Context) error {
	if !p.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping transaction poller")

	close(p.stopChan)

	select {
	case <-p.stoppedCh:
		logger.InfoCtx(ctx, "Transaction poller stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Transaction poller stop interrupted by context timeout")
		return ctx.Err()
	}
}

// pollOnce fetches the latest transactions and applies any unprocessed
// registry events, oldest first
func (p *poller) pollOnce(ctx context.Context) error {
	txs, err := p.client.GetContractTransactions(ctx, p.config.Contract, p.config.PageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	var maxHeight uint64

	// The API returns newest first; apply in chain order
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]

		if tx.BlockHeight > maxHeight {
			maxHeight = tx.BlockHeight
		}

		processed, err := p.alreadyProcessed(ctx, &tx)
		if err != nil {
			return err
		}
		if processed {
			continue
		}

		event, ok := p.normalizeTransaction(ctx, &tx)
		if !ok {
			p.seen[tx.TxID] = struct{}{}
			continue
		}

		// Mark the transaction seen only after Apply returns, so a
		// storage fault leaves it eligible for the next tick
		applied, err := p.engine.Apply(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to apply transaction %s: %w", tx.TxID, err)
		}
		p.seen[tx.TxID] = struct{}{}

		if applied {
			p.publishApplied(ctx, event)
		}
	}

	if maxHeight > p.cursor {
		if err := p.store.SetBlockCursor(ctx, p.config.Contract, maxHeight); err != nil {
			return fmt.Errorf("failed to save block cursor: %w", err)
		}
		p.cursor = maxHeight
	}

	return nil
}

// alreadyProcessed reports whether a transaction was handled in this process
// or, for transactions at or below the persisted cursor, by an earlier run
// or the webhook path
func (p *poller) alreadyProcessed(ctx context.Context, tx *stacks.AddressTransaction) (bool, error) {
	if _, ok := p.seen[tx.TxID]; ok {
		return true, nil
	}

	if p.cursor > 0 && tx.BlockHeight <= p.cursor {
		applied, err := p.store.IsTxApplied(ctx, tx.TxID)
		if err != nil {
			return false, fmt.Errorf("failed to check transaction %s: %w", tx.TxID, err)
		}
		if applied {
			p.seen[tx.TxID] = struct{}{}
			return true, nil
		}
	}

	return false, nil
}

// normalizeTransaction converts an API transaction into a normalized event.
// Returns false for transactions outside the registry's scope or with
// undecodable arguments.
func (p *poller) normalizeTransaction(ctx context.Context, tx *stacks.AddressTransaction) (domain.NormalizedEvent, bool) {
	if tx.TxStatus != domain.StatusSuccess || tx.ContractCall == nil {
		return domain.NormalizedEvent{}, false
	}

	kind, ok := domain.KindForFunction(tx.ContractCall.FunctionName)
	if !ok {
		return domain.NormalizedEvent{}, false
	}

	args := tx.ContractCall.FunctionArgs
	if len(args) == 0 {
		logger.WarnCtx(ctx, "Skipping call without arguments",
			zap.String("tx_id", tx.TxID),
			zap.String("function", tx.ContractCall.FunctionName))
		return domain.NormalizedEvent{}, false
	}

	username := clarity.DecodeTyped(args[0].Repr, args[0].Type)
	if username == "" {
		logger.WarnCtx(ctx, "Skipping call with undecodable username",
			zap.String("tx_id", tx.TxID),
			zap.String("function", tx.ContractCall.FunctionName))
		return domain.NormalizedEvent{}, false
	}

	event := domain.NormalizedEvent{
		Kind:        kind,
		TxID:        tx.TxID,
		BlockHeight: tx.BlockHeight,
		Timestamp:   tx.BurnBlockTime,
		Sender:      domain.NormalizePrincipal(tx.SenderAddress),
		Username:    username,
	}

	if kind == domain.EventKindTransfer {
		if len(args) < 2 {
			logger.WarnCtx(ctx, "Skipping transfer without recipient argument",
				zap.String("tx_id", tx.TxID),
				zap.String("username", username))
			return domain.NormalizedEvent{}, false
		}
		event.NewOwner = clarity.DecodeTyped(args[1].Repr, args[1].Type)
	}

	if !event.Valid() {
		logger.WarnCtx(ctx, "Skipping transaction with invalid event fields",
			zap.String("tx_id", tx.TxID),
			zap.String("username", username))
		return domain.NormalizedEvent{}, false
	}

	return event, true
}

// publishApplied notifies the broker of an applied event. Publish failures
// are logged and do not fail the cycle; the ledger is the source of truth.
func (p *poller) publishApplied(ctx context.Context, event domain.NormalizedEvent) {
	if p.publisher == nil {
		return
	}

	if err := p.publisher.PublishEvent(ctx, domain.NewAppliedEvent(event, domain.SourcePoller)); err != nil {
		logger.WarnCtx(ctx, "Failed to publish applied event",
			zap.String("tx_id", event.TxID),
			zap.String("username", event.Username),
			zap.Error(err))
	}
}
