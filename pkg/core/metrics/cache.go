package metrics

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sync"

	"finanalyst/pkg/models"
)

// analysisCache memoizes Analyze results keyed by a content hash of the
// row set. The upload boundary evicts the entry of the analysis it is
// replacing, so the cache holds only statements still owned by a live
// session.
type analysisCache struct {
	mu      sync.Mutex
	entries map[[sha256.Size]byte]*Analysis
}

func newAnalysisCache() *analysisCache {
	return &analysisCache{entries: make(map[[sha256.Size]byte]*Analysis)}
}

func (c *analysisCache) get(key [sha256.Size]byte) (*Analysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[key]
	return a, ok
}

func (c *analysisCache) put(key [sha256.Size]byte, a *Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = a
}

func (c *analysisCache) evict(key [sha256.Size]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *analysisCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func hashRows(rows []models.LineItem) [sha256.Size]byte {
	h := sha256.New()
	var buf [8]byte
	for _, row := range rows {
		h.Write([]byte(row.Label))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(row.Prior))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(row.Current))
		h.Write(buf[:])
	}
	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))
	return key
}
