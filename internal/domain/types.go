package domain

import (
	"regexp"
	"strings"
)

// EventKind represents the type of username-registry event
type EventKind string

const (
	EventKindRegister EventKind = "register"
	EventKindTransfer EventKind = "transfer"
	EventKindRelease  EventKind = "release"
)

// Contract function names recognized by the indexer
const (
	FunctionRegisterUsername = "register-username"
	FunctionTransferUsername = "transfer-username"
	FunctionReleaseUsername  = "release-username"
)

// StatusSuccess is the transaction status both the chainhook payload and the
// Hiro API report for successfully mined contract calls
const StatusSuccess = "success"

// KindForFunction maps a contract function name to its event kind.
// The second return value is false for unrecognized functions.
func KindForFunction(name string) (EventKind, bool) {
	switch name {
	case FunctionRegisterUsername:
		return EventKindRegister, true
	case FunctionTransferUsername:
		return EventKindTransfer, true
	case FunctionReleaseUsername:
		return EventKindRelease, true
	default:
		return "", false
	}
}

// NormalizedEvent is the canonical internal form of one successful
// username-registry contract call, regardless of which delivery channel
// (chainhook webhook or Hiro API polling) produced it.
type NormalizedEvent struct {
	Kind        EventKind `json:"kind"`
	TxID        string    `json:"tx_id"`
	BlockHeight uint64    `json:"block_height"`
	// Timestamp is the block timestamp in whole Unix seconds
	Timestamp int64  `json:"timestamp"`
	Sender    string `json:"sender"`
	Username  string `json:"username"`
	// NewOwner is set for transfer events only
	NewOwner string `json:"new_owner,omitempty"`
}

// Valid checks that the event carries every field its kind requires
func (e *NormalizedEvent) Valid() bool {
	if e.TxID == "" || e.Sender == "" || !ValidUsername(e.Username) {
		return false
	}

	switch e.Kind {
	case EventKindRegister, EventKindRelease:
		return true
	case EventKindTransfer:
		return e.NewOwner != ""
	default:
		return false
	}
}

var usernameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

// ValidUsername checks the registry's username constraints:
// 3-30 characters, lowercase alphanumeric, underscore or hyphen
func ValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// IsStacksAddress checks if a string looks like a Stacks principal
// (mainnet SP/SM or testnet ST prefixes)
func IsStacksAddress(s string) bool {
	return strings.HasPrefix(s, "SP") || strings.HasPrefix(s, "SM") || strings.HasPrefix(s, "ST")
}

// NormalizePrincipal strips a contract suffix from a principal, leaving the
// plain account address (e.g. "SP123.my-contract" -> "SP123")
func NormalizePrincipal(principal string) string {
	if i := strings.Index(principal, "."); i >= 0 {
		return principal[:i]
	}
	return principal
}
