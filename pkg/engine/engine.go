// Package engine provides the decision engine for ultimate tic-tac-toe:
// heuristic position evaluation, tiered move selection up to time-boxed
// alpha-beta search, and post-hoc move-quality classification.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Engine evaluates positions and selects moves. An Engine is safe for
// concurrent use: board states are values, the evaluation cache is
// thread-safe and the random source is guarded.
type Engine struct {
	weights    EvalWeights
	subValues  [9]int
	search     SearchConfig
	thresholds ClassifyThresholds

	cache *EvalCache

	rng   *rand.Rand
	rngMu sync.Mutex
}

// Options configures the engine. Zero values select defaults.
type Options struct {
	Weights    EvalWeights
	Search     SearchConfig
	Thresholds ClassifyThresholds
	CacheSize  uint32 // evaluation cache entries (0 = default)
	NoCache    bool   // disable the evaluation cache entirely
	Seed       int64  // random seed for the shallow tiers (0 = time-based)
}

// NewEngine creates an engine from the given options.
func NewEngine(opts Options) (*Engine, error) {
	weights := opts.Weights
	if weights == (EvalWeights{}) {
		weights = DefaultWeights()
	}
	if weights.Win <= weights.maxHeuristic() {
		return nil, fmt.Errorf("engine: win constant %d does not dominate heuristic bound %d",
			weights.Win, weights.maxHeuristic())
	}

	search := opts.Search
	if search == (SearchConfig{}) {
		search = DefaultSearchConfig()
	}
	if search.StartDepth < 1 {
		search.StartDepth = 1
	}
	if search.MaxDepth < search.StartDepth {
		search.MaxDepth = search.StartDepth
	}

	thresholds := opts.Thresholds
	if thresholds == (ClassifyThresholds{}) {
		thresholds = DefaultThresholds()
	}
	if thresholds.Good >= thresholds.Inaccuracy {
		return nil, fmt.Errorf("engine: classification thresholds out of order (%d >= %d)",
			thresholds.Good, thresholds.Inaccuracy)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		weights:    weights,
		subValues:  weights.subValueTable(),
		search:     search,
		thresholds: thresholds,
		rng:        rand.New(rand.NewSource(seed)),
	}

	if !opts.NoCache {
		size := opts.CacheSize
		if size == 0 {
			size = DefaultCacheSize
		}
		e.cache = NewEvalCache(size)
	}
	return e, nil
}

// Weights returns the evaluation weights in use.
func (e *Engine) Weights() EvalWeights {
	return e.weights
}

// SearchConfig returns the Deep-tier search settings in use.
func (e *Engine) SearchConfig() SearchConfig {
	return e.search
}

// Cache returns the evaluation cache (nil if disabled).
func (e *Engine) Cache() *EvalCache {
	return e.cache
}

// randIntn draws from the engine's guarded random source.
func (e *Engine) randIntn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}
