package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form prefix:hash(parts...). The
// keyer uses it with the "graph", "layout", and "artifact" prefixes so
// the three pipeline stages never collide even when their inputs hash
// the same.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) so distinct option sets cannot collide
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. The
// pipeline uses it to fingerprint raw CSV input before any parsing.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
