package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Embeddings is a two-level cache for provider vectors: a process-local
// layer in front of JSON entry files on disk. Keys bind the embedding
// model name so switching models never serves stale vectors.
type Embeddings struct {
	memory *gocache.Cache
	dir    string
	ttl    time.Duration
}

// NewEmbeddings creates a cache rooted at dir. The TTL applies to disk
// entries; the memory layer uses the same window.
func NewEmbeddings(dir string, ttl time.Duration) *Embeddings {
	return &Embeddings{
		memory: gocache.New(ttl, 10*time.Minute),
		dir:    dir,
		ttl:    ttl,
	}
}

type embeddingEntry struct {
	Vector    []float32 `json:"vector"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Key generates the cache key for a model/text pair
func Key(model, text string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return "crossfoot:v1:" + hex.EncodeToString(hash[:])
}

// Get retrieves the cached vector for a model/text pair (memory first,
// then disk with promotion)
func (c *Embeddings) Get(model, text string) ([]float32, bool) {
	key := Key(model, text)

	if val, found := c.memory.Get(key); found {
		return val.([]float32), true
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry embeddingEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Check expiration
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return nil, false
	}

	c.memory.Set(key, entry.Vector, gocache.DefaultExpiration)
	return entry.Vector, true
}

// Put stores the vector in both layers. The memory layer always
// succeeds; disk failures are returned for the caller to log.
func (c *Embeddings) Put(model, text string, vec []float32) error {
	key := Key(model, text)
	c.memory.Set(key, vec, gocache.DefaultExpiration)

	entry := embeddingEntry{
		Vector:    vec,
		ExpiresAt: time.Now().Add(c.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Clear removes every entry from both layers
func (c *Embeddings) Clear() error {
	c.memory.Flush()
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key
func (c *Embeddings) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
