// Package cache stores rendered adjudication reports keyed by claim payload
// and rule-table fingerprint. The pipeline is pure, so a hit returns bytes
// identical to a fresh evaluation; a rules change alters the fingerprint and
// naturally invalidates every entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the raw claim payload and the active
// rule-table fingerprint.
func Key(payload, rulesFingerprint string) string {
	sum := sha256.Sum256([]byte(rulesFingerprint + "\x00" + payload))
	return "claimlens:v1:" + hex.EncodeToString(sum[:])
}
