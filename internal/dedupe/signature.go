package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// BuildSignature computes the deduplication key for ticket text: lowercase,
// trimmed, every whitespace run collapsed to a single space, then SHA-256 of
// the UTF-8 bytes, hex encoded. Empty or whitespace-only text yields the empty
// string, meaning "not deduplicable". Only the ticket text feeds the hash;
// extracted fields vary across provider calls and would break hash stability.
func BuildSignature(text string) string {
	normalized := normalizeText(text)
	if normalized == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	return strings.Join(fields, " ")
}
