// Package clarity decodes Clarity contract-call argument values out of the
// two payload shapes the upstream delivery schemas produce: pre-decoded
// {type, repr} pairs and raw hex-encoded argument blobs.
package clarity

import (
	"encoding/binary"
	"strings"
)

// Maximum username length accepted by the registry contract (string-ascii 30)
const maxStringLen = 30

// candidateOffsets are positions empirically known to hold the 4-byte
// big-endian length field in the chainhook hex args layout
// (4-byte type tag, 1-byte flag, 3 pad bytes, 4-byte length, content).
// They are tried before falling back to a linear scan.
var candidateOffsets = []int{8, 4, 5, 0}

// DecodeTyped extracts the plain value from a pre-decoded Clarity argument
// repr. String types lose their surrounding quotes, principals lose the
// leading sigil and any contract suffix, and other types pass through
// unchanged. Returns "" when the repr is empty.
func DecodeTyped(repr, typ string) string {
	if repr == "" {
		return ""
	}

	if strings.Contains(typ, "string") || strings.Contains(typ, "ascii") {
		return strings.Trim(repr, `"`)
	}

	if strings.Contains(typ, "principal") {
		principal := strings.Trim(repr, `'`)
		if i := strings.Index(principal, "."); i >= 0 {
			principal = principal[:i]
		}
		return principal
	}

	return repr
}

// DecodeUsernameFromBlob scans a raw encoded argument blob for an embedded
// ASCII string: a 4-byte big-endian length prefix followed by that many
// bytes of restricted-alphabet content. Candidate offsets are tried first,
// then every offset in order. Returns "" when nothing decodable is found.
//
// This is a heuristic working around an unstable upstream encoding, not a
// parser for the full Clarity wire format.
func DecodeUsernameFromBlob(blob []byte) string {
	for _, offset := range candidateOffsets {
		if s := decodeAt(blob, offset); s != "" {
			return s
		}
	}

	for offset := range blob {
		if s := decodeAt(blob, offset); s != "" {
			return s
		}
	}

	return ""
}

// decodeAt attempts to read a length-prefixed ASCII string at one offset
func decodeAt(blob []byte, offset int) string {
	if offset < 0 || offset+4 > len(blob) {
		return ""
	}

	length := int(binary.BigEndian.Uint32(blob[offset : offset+4]))
	if length < 1 || length > maxStringLen {
		return ""
	}

	start := offset + 4
	end := start + length
	if end > len(blob) {
		return ""
	}

	content := blob[start:end]
	for _, b := range content {
		if !isUsernameByte(b) {
			return ""
		}
	}

	return string(content)
}

// isUsernameByte reports whether b belongs to the registry's username
// alphabet (case-insensitive alphanumeric, underscore, hyphen)
func isUsernameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-':
		return true
	default:
		return false
	}
}
