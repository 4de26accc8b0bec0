package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching parsed document text
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey generates a cache key for a document. Including the
// modification time invalidates the entry when the file changes.
func DocumentKey(path string, modTime time.Time) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", path, modTime.UnixNano())))
	return "synapx:v1:" + hex.EncodeToString(hash[:])
}
