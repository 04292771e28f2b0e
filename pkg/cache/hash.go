package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
)

// keyVersion is mixed into every derived key. Bump it when the encoding of
// a cached value changes so stale entries are never decoded.
const keyVersion = "sunburst/1"

// hashKey returns kind + ":" + the digest of the JSON encoding of parts.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	io.WriteString(h, keyVersion)
	enc := json.NewEncoder(h)
	for _, p := range parts {
		// Key options are plain structs; they always encode.
		_ = enc.Encode(p)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
