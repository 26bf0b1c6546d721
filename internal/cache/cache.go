package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a key-value store whose entries expire after a TTL.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value; ttl <= 0 keeps it until deleted.
	Set(key K, value V, ttl time.Duration)

	Delete(key K)

	// Len counts live entries.
	Len() int

	// PurgeExpired drops expired entries.
	PurgeExpired()
}

// Key hashes parts into a fixed-size key, so long prompts can be used as cache keys.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
