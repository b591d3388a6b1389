package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey derives a key of the form "<class>:<sha256 hex>" from the
// structured parts that determine a value: the input point hash plus the
// filter options for networks, the network hash plus the render format
// for artifacts. Each part is fed through JSON, so the option structs
// stay the single source of what distinguishes two cache entries.
func hashKey(class string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, part := range parts {
		// Encoding into a hash cannot fail for the option structs used here.
		_ = enc.Encode(part)
	}
	return fmt.Sprintf("%s:%x", class, h.Sum(nil))
}

// Hash returns the SHA-256 content hash of data as a 64-character hex
// string. Serialized network documents are hashed this way to key their
// rendered artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
