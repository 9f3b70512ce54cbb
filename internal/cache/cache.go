package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching parsed reports.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ContentKey generates a cache key from raw file content, so an edited file
// never hits a stale entry and an unchanged file hits under any path.
func ContentKey(content []byte) string {
	hash := sha256.Sum256(content)
	return "readgedcom:v1:" + hex.EncodeToString(hash[:])
}
