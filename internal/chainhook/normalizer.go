package chainhook

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ArgyPorgy/stx-names-indexer/internal/clarity"
	"github.com/ArgyPorgy/stx-names-indexer/internal/domain"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
)

// ParseEnvelope decodes a webhook request body into an Envelope, accepting
// both the wrapped {"chainhook":…,"event":…} delivery shape and a bare
// envelope body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse chainhook payload: %w", err)
	}

	raw := []byte(body)
	if len(payload.Event) > 0 {
		raw = payload.Event
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse chainhook envelope: %w", err)
	}

	return &env, nil
}

// Normalize flattens one envelope into canonical events, one per recognized
// successful username-registry operation, preserving upstream order. An
// operation that cannot be decoded is skipped with a warning; it never
// aborts the rest of the envelope.
func Normalize(env *Envelope) []domain.NormalizedEvent {
	var events []domain.NormalizedEvent

	for _, apply := range env.Apply {
		blockHeight := apply.BlockIdentifier.Index
		// Upstream timestamps are milliseconds
		timestamp := apply.Timestamp / 1000

		for _, tx := range apply.Transactions {
			txID := tx.TransactionIdentifier.Hash
			sender := domain.NormalizePrincipal(tx.Metadata.SenderPrincipal())

			for _, op := range tx.Operations {
				kind, ok := domain.KindForFunction(op.FunctionName())
				if !ok || op.Status != domain.StatusSuccess {
					continue
				}

				event, ok := normalizeOperation(kind, &op, txID, sender, blockHeight, timestamp)
				if !ok {
					continue
				}

				events = append(events, event)
			}
		}
	}

	return events
}

// normalizeOperation decodes one recognized operation's arguments.
// Returns false when a required field cannot be decoded.
func normalizeOperation(
	kind domain.EventKind,
	op *Operation,
	txID string,
	sender string,
	blockHeight uint64,
	timestamp int64,
) (domain.NormalizedEvent, bool) {
	event := domain.NormalizedEvent{
		Kind:        kind,
		TxID:        txID,
		BlockHeight: blockHeight,
		Timestamp:   timestamp,
		Sender:      sender,
	}

	switch {
	case op.ContractCall != nil:
		args := op.ContractCall.FunctionArgs
		if len(args) == 0 {
			logger.Warn("Operation has no function arguments",
				zap.String("kind", string(kind)),
				zap.String("tx_id", txID))
			return event, false
		}

		event.Username = clarity.DecodeTyped(args[0].Repr, args[0].Type)

		if kind == domain.EventKindTransfer {
			if len(args) < 2 {
				logger.Warn("Transfer operation missing new-owner argument",
					zap.String("tx_id", txID))
				return event, false
			}
			event.NewOwner = clarity.DecodeTyped(args[1].Repr, args[1].Type)
		}

	case op.Metadata != nil:
		blob, err := decodeArgsBlob(op.Metadata.Args)
		if err != nil {
			logger.Warn("Failed to decode hex args blob",
				zap.Error(err),
				zap.String("tx_id", txID))
			return event, false
		}

		event.Username = clarity.DecodeUsernameFromBlob(blob)

		// The blob heuristic recovers only the username; a transfer's new
		// owner is unavailable in this shape
		if kind == domain.EventKindTransfer {
			logger.Warn("Cannot recover new owner from raw args blob, skipping transfer",
				zap.String("tx_id", txID))
			return event, false
		}

	default:
		logger.Warn("Operation carries neither contract_call nor metadata",
			zap.String("kind", string(kind)),
			zap.String("tx_id", txID))
		return event, false
	}

	if !event.Valid() {
		logger.Warn("Skipping operation with incomplete event data",
			zap.String("kind", string(kind)),
			zap.String("tx_id", txID),
			zap.String("username", event.Username),
			zap.String("sender", event.Sender))
		return event, false
	}

	return event, true
}

// decodeArgsBlob decodes a hex argument blob, tolerating a 0x prefix
func decodeArgsBlob(args string) ([]byte, error) {
	if args == "" {
		return nil, fmt.Errorf("empty args blob")
	}
	return hex.DecodeString(strings.TrimPrefix(args, "0x"))
}
