package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document is a source text blob with a stable identifier (its file name).
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Fingerprint derives the cache key for a document from its content, not
// its id. Editing a source file therefore changes the fingerprint and the
// stale cache entry is simply never read again.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// CacheEntry is the persisted extraction result for one fingerprint.
type CacheEntry struct {
	Fingerprint string   `json:"fingerprint"`
	DocID       string   `json:"doc_id"`
	Triples     []Triple `json:"triples"`
}
