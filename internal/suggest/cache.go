package suggest

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCacheTTL is how long a cached suggestion stays live.
	DefaultCacheTTL = time.Hour
	// DefaultCacheSize bounds the number of cached suggestions.
	DefaultCacheSize = 1024
)

// CacheEntry pairs a suggestion with its insertion time. Entries are only
// ever inserted or deleted, never mutated.
type CacheEntry struct {
	Suggestion *NamingSuggestion
	CreatedAt  time.Time
	TTL        time.Duration
}

// Cache is an in-process LRU of suggestions with lazy TTL eviction: expired
// entries are deleted when a lookup touches them.
type Cache struct {
	entries *lru.Cache[string, CacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given capacity and TTL; non-positive
// values fall back to the defaults.
func NewCache(size int, ttl time.Duration) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	entries, err := lru.New[string, CacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, ttl: ttl, now: time.Now}, nil
}

// Get returns the live suggestion for key. An expired entry is removed and
// reported as a miss.
func (c *Cache) Get(key string) (*NamingSuggestion, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.CreatedAt) > entry.TTL {
		c.entries.Remove(key)
		return nil, false
	}
	return entry.Suggestion, true
}

// Set stores a suggestion under key with the default TTL.
func (c *Cache) Set(key string, s *NamingSuggestion) {
	c.entries.Add(key, CacheEntry{Suggestion: s, CreatedAt: c.now(), TTL: c.ttl})
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Fingerprint computes the canonical cache key for a symbol context.
// Uses length-prefixed encoding to avoid delimiter ambiguity.
// Format: ${len}:${value}${len}:${value}... hashed with SHA-256, hex output.
func Fingerprint(file, oldName, declarationText string) string {
	var builder strings.Builder
	for _, field := range []string{file, oldName, declarationText} {
		builder.WriteString(strconv.Itoa(len(field)))
		builder.WriteByte(':')
		builder.WriteString(field)
	}
	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
