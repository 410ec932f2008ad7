package engine

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/utttengine/pkg/game"
)

// SelfPlayOptions configures a self-play experiment between two tiers.
type SelfPlayOptions struct {
	Trials      int
	Workers     int // parallel games (0 = 1)
	Seed        int64
	DifficultyA Difficulty
	DifficultyB Difficulty
}

// SelfPlayResult summarizes a self-play run from player A's side. Score per
// game is 1 for a win, 0.5 for a draw, 0 for a loss; the confidence
// interval is the normal-approximation 95% band on the mean.
type SelfPlayResult struct {
	Trials int
	WinsA  int
	WinsB  int
	Draws  int

	Mean   float64
	StdDev float64
	CI95   float64
}

// SelfPlay plays Trials games between the two difficulties, alternating
// which side moves first so neither tier keeps the first-move advantage.
// Games run on Workers goroutines; each worker owns a private random
// source, so runs with the same seed and worker count are reproducible
// per worker.
func (e *Engine) SelfPlay(opts SelfPlayOptions) (*SelfPlayResult, error) {
	if opts.Trials <= 0 {
		return nil, fmt.Errorf("selfplay: trials must be positive")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > opts.Trials {
		workers = opts.Trials
	}

	scores := make([]float64, opts.Trials)
	trials := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rng := newWorkerRand(opts.Seed + int64(w)*0x9E3779B9)
			for t := range trials {
				aStarts := t%2 == 0
				outcome := e.playOne(opts.DifficultyA, opts.DifficultyB, aStarts, rng.Intn)
				scores[t] = outcome
			}
		}(w)
	}
	for t := 0; t < opts.Trials; t++ {
		trials <- t
	}
	close(trials)
	wg.Wait()

	result := &SelfPlayResult{Trials: opts.Trials}
	for _, s := range scores {
		switch s {
		case 1:
			result.WinsA++
		case 0:
			result.WinsB++
		default:
			result.Draws++
		}
	}
	result.Mean, result.StdDev = stat.MeanStdDev(scores, nil)
	if math.IsNaN(result.StdDev) {
		result.StdDev = 0
	}
	result.CI95 = 1.96 * result.StdDev / math.Sqrt(float64(opts.Trials))
	return result, nil
}

// playOne plays a single game to completion and scores it for player A.
func (e *Engine) playOne(a, b Difficulty, aStarts bool, randIntn func(int) int) float64 {
	aMark := game.Cross
	if !aStarts {
		aMark = game.Nought
	}

	state := game.NewGame()
	for state.Result == game.OutcomeNone {
		tier := b
		if state.ToMove == aMark {
			tier = a
		}
		m, err := e.selectMove(state, tier, randIntn)
		if err != nil {
			// Unreachable for an undecided state; treat as a draw.
			return 0.5
		}
		state = game.Apply(state, m)
	}

	if winner, ok := state.Result.Winner(); ok {
		if winner == aMark {
			return 1
		}
		return 0
	}
	return 0.5
}
