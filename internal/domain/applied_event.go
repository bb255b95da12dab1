package domain

import "github.com/oklog/ulid/v2"

// Event sources for AppliedEvent
const (
	SourceChainhook = "chainhook"
	SourcePoller    = "poller"
)

// AppliedEvent is the message published after a normalized event has been
// reconciled into the ledger. Consumers use the ULID for dedup and ordering
// within a subject.
type AppliedEvent struct {
	ID          string    `json:"id"`
	Kind        EventKind `json:"kind"`
	Username    string    `json:"username"`
	Owner       string    `json:"owner"`
	TxID        string    `json:"tx_id"`
	BlockHeight uint64    `json:"block_height"`
	Timestamp   int64     `json:"timestamp"`
	Source      string    `json:"source"`
}

// NewAppliedEvent builds the broker message for a reconciled event. Owner is
// the principal left in control: the registrant, the transfer recipient, or
// the releasing sender.
func NewAppliedEvent(event NormalizedEvent, source string) *AppliedEvent {
	owner := event.Sender
	if event.Kind == EventKindTransfer {
		owner = event.NewOwner
	}

	return &AppliedEvent{
		ID:          ulid.Make().String(),
		Kind:        event.Kind,
		Username:    event.Username,
		Owner:       owner,
		TxID:        event.TxID,
		BlockHeight: event.BlockHeight,
		Timestamp:   event.Timestamp,
		Source:      source,
	}
}
