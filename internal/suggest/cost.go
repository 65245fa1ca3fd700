package suggest

import "sync"

// ModelPrice holds per-million-token prices in USD.
type ModelPrice struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// priceTable maps known model names to their list prices. Unknown models
// fall back to defaultPrice so estimates stay conservative rather than zero.
var priceTable = map[string]ModelPrice{
	"gemini-2.5-flash": {InputPerMTok: 0.30, OutputPerMTok: 2.50},
	"gemini-2.5-pro":   {InputPerMTok: 1.25, OutputPerMTok: 10.00},
	"gemini-2.0-flash": {InputPerMTok: 0.10, OutputPerMTok: 0.40},
}

var defaultPrice = ModelPrice{InputPerMTok: 0.30, OutputPerMTok: 2.50}

// CostStats is a snapshot of accumulated usage.
type CostStats struct {
	TotalTokens      int     `json:"totalTokens"`
	EstimatedCostUSD float64 `json:"estimatedCostUsd"`
	APICalls         int     `json:"apiCalls"`
	CacheHitRate     float64 `json:"cacheHitRate"`
}

// CostTracker accumulates token usage and cache statistics across a run.
// Safe for concurrent use.
type CostTracker struct {
	mu          sync.Mutex
	totalTokens int
	costUSD     float64
	apiCalls    int
	cacheHits   int
	lookups     int
}

// NewCostTracker returns an empty tracker.
func NewCostTracker() *CostTracker {
	return &CostTracker{}
}

// RecordCall adds one completed API call to the totals. The cost estimate
// uses the model's price row, or the default row for unknown models.
func (t *CostTracker) RecordCall(model string, promptTokens, completionTokens int) {
	price, ok := priceTable[model]
	if !ok {
		price = defaultPrice
	}
	cost := float64(promptTokens)/1e6*price.InputPerMTok +
		float64(completionTokens)/1e6*price.OutputPerMTok

	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalTokens += promptTokens + completionTokens
	t.costUSD += cost
	t.apiCalls++
}

// RecordCacheHit counts a lookup answered from the cache.
func (t *CostTracker) RecordCacheHit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cacheHits++
	t.lookups++
}

// RecordCacheMiss counts a lookup that went to the provider.
func (t *CostTracker) RecordCacheMiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lookups++
}

// Stats returns a snapshot of the current totals.
func (t *CostTracker) Stats() CostStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	hitRate := 0.0
	if t.lookups > 0 {
		hitRate = float64(t.cacheHits) / float64(t.lookups)
	}
	return CostStats{
		TotalTokens:      t.totalTokens,
		EstimatedCostUSD: t.costUSD,
		APICalls:         t.apiCalls,
		CacheHitRate:     hitRate,
	}
}

// Reset clears all counters.
func (t *CostTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalTokens = 0
	t.costUSD = 0
	t.apiCalls = 0
	t.cacheHits = 0
	t.lookups = 0
}
