// Package chainhook parses Chainhook event envelopes and normalizes the
// username-registry operations they carry into canonical internal events.
package chainhook

import "encoding/json"

// Payload is the outer body a chainhook delivery may wrap around the
// envelope: {"chainhook": {...}, "event": {...}}. Deliveries observed in
// production also post the envelope bare, so both shapes are accepted.
type Payload struct {
	Chainhook *HookInfo       `json:"chainhook,omitempty"`
	Event     json.RawMessage `json:"event,omitempty"`
}

// HookInfo identifies the chainhook definition that fired the delivery
type HookInfo struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Envelope is one upstream notification batch
type Envelope struct {
	Apply    []ApplyBlock      `json:"apply"`
	Rollback []json.RawMessage `json:"rollback,omitempty"`
}

// ApplyBlock is one confirmed block's worth of matching transactions
type ApplyBlock struct {
	BlockIdentifier BlockIdentifier `json:"block_identifier"`
	// Timestamp is in milliseconds
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
}

// BlockIdentifier carries the block height and hash
type BlockIdentifier struct {
	Index uint64 `json:"index"`
	Hash  string `json:"hash"`
}

// Transaction is one transaction inside an apply block
type Transaction struct {
	TransactionIdentifier TransactionIdentifier `json:"transaction_identifier"`
	Metadata              *TransactionMetadata  `json:"metadata,omitempty"`
	Operations            []Operation           `json:"operations"`
}

// TransactionIdentifier carries the transaction hash
type TransactionIdentifier struct {
	Hash string `json:"hash"`
}

// TransactionMetadata carries the sender principal. Upstream deployments
// disagree on the field name, so both are parsed.
type TransactionMetadata struct {
	Sender        string `json:"sender,omitempty"`
	SenderAddress string `json:"sender_address,omitempty"`
}

// SenderPrincipal returns whichever sender field the delivery populated
func (m *TransactionMetadata) SenderPrincipal() string {
	if m == nil {
		return ""
	}
	if m.Sender != "" {
		return m.Sender
	}
	return m.SenderAddress
}

// Operation is one contract function invocation recorded inside a
// transaction. Exactly one of ContractCall (structured args) or Metadata
// (raw hex args blob) is populated depending on the upstream schema.
type Operation struct {
	Type         string             `json:"type"`
	Status       string             `json:"status"`
	ContractCall *ContractCall      `json:"contract_call,omitempty"`
	Metadata     *OperationMetadata `json:"metadata,omitempty"`
}

// ContractCall is the structured operation shape with pre-decoded arguments
type ContractCall struct {
	ContractIdentifier string        `json:"contract_identifier"`
	FunctionName       string        `json:"function_name"`
	FunctionArgs       []FunctionArg `json:"function_args"`
}

// FunctionArg is one pre-decoded Clarity argument
type FunctionArg struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
	Repr string `json:"repr,omitempty"`
	Hex  string `json:"hex,omitempty"`
}

// OperationMetadata is the raw operation shape carrying a hex-encoded
// argument blob instead of a decoded argument list
type OperationMetadata struct {
	ContractIdentifier string `json:"contract_identifier,omitempty"`
	FunctionName       string `json:"function_name"`
	// Args is the hex-encoded argument blob, usually 0x-prefixed
	Args string `json:"args,omitempty"`
}

// FunctionName returns the called function's name from whichever shape the
// operation uses, or "" when neither is present
func (o *Operation) FunctionName() string {
	if o.ContractCall != nil {
		return o.ContractCall.FunctionName
	}
	if o.Metadata != nil {
		return o.Metadata.FunctionName
	}
	return ""
}
