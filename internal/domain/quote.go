package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Quote is an immutable text snippet identified by its content hash.
type Quote struct {
	ID   string // hex-encoded SHA-256 of Text
	Type string // category, e.g. "love"
	Text string
}

// Fingerprint returns the hex-encoded SHA-256 of the given text.
// The hash and encoding are fixed by contract: identical text always maps
// to the identical id, which is what makes bulk loads idempotent.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// TickSeed derives the quote seek position for one scheduled tick.
// Hashing the formatted timestamp keeps a retried tick on the same quote.
func TickSeed(tick time.Time) string {
	return Fingerprint(tick.UTC().Format(time.RFC3339))
}
