package engine

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects a move-selection strategy tier.
type Difficulty int

const (
	DifficultyRandom    Difficulty = iota // uniform choice over legal moves
	DifficultyTactical                    // win-now / block-now, else random
	DifficultyHeuristic                   // one-ply evaluation ranking
	DifficultyDeep                        // time-boxed iterative-deepening alpha-beta
)

// String returns the display name of the difficulty tier.
func (d Difficulty) String() string {
	return [...]string{"random", "tactical", "heuristic", "deep"}[d]
}

// ParseDifficulty parses a difficulty tier name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return DifficultyRandom, nil
	case "tactical":
		return DifficultyTactical, nil
	case "heuristic":
		return DifficultyHeuristic, nil
	case "deep":
		return DifficultyDeep, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (random, tactical, heuristic, deep)", s)
}

// EvalWeights are the heuristic evaluation term weights. Win must dominate
// the sum of every other contribution so a decisive result always outranks
// heuristic noise; NewEngine rejects weight sets that violate this.
//
// Blocking weights (MacroTwoOpp, MacroOneOpp) sit slightly above their
// building counterparts so that defense wins evaluation ties.
type EvalWeights struct {
	Win int // decisive game result

	MacroTwoOwn int // two own sub-boards on an open macro line
	MacroTwoOpp int // same threat by the opponent
	MacroOneOwn int // one own sub-board on an open macro line
	MacroOneOpp int // same by the opponent

	SubCenter int // owning the center sub-board
	SubCorner int // owning a corner sub-board
	SubEdge   int // owning an edge sub-board
	SubDraw   int // dead weight of a drawn sub-board, charged to both sides

	SendFree     int // handing the opponent a free sub-board choice
	SendWinnable int // sending the opponent where they can win a sub-board at once
}

// DefaultWeights returns the tuned default evaluation weights.
func DefaultWeights() EvalWeights {
	return EvalWeights{
		Win:          1_000_000,
		MacroTwoOwn:  700,
		MacroTwoOpp:  750,
		MacroOneOwn:  80,
		MacroOneOpp:  90,
		SubCenter:    250,
		SubCorner:    180,
		SubEdge:      120,
		SubDraw:      40,
		SendFree:     60,
		SendWinnable: 300,
	}
}

// maxHeuristic is an upper bound on the magnitude of the non-decisive part
// of an evaluation under these weights.
func (w EvalWeights) maxHeuristic() int {
	macro := 8 * max(w.MacroTwoOwn, w.MacroTwoOpp)
	capture := 9 * (max(max(w.SubCenter, w.SubCorner), w.SubEdge) + modelBoost)
	dead := 9 * w.SubDraw
	return macro + capture + dead + w.SendFree + w.SendWinnable
}

// subValueTable maps sub-board index to its positional weight.
func (w EvalWeights) subValueTable() [9]int {
	corner, edge, center := w.SubCorner, w.SubEdge, w.SubCenter
	return [9]int{
		corner, edge, corner,
		edge, center, edge,
		corner, edge, corner,
	}
}

// SearchConfig controls the Deep tier's iterative deepening.
type SearchConfig struct {
	Budget           time.Duration // wall-clock budget for one move selection
	StartDepth       int           // first iteration depth
	MaxDepth         int           // hard ceiling, the board rarely supports more
	UseOpponentModel bool          // perturb positional weights from the move log
}

// DefaultSearchConfig returns the default Deep-tier settings.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Budget:     1000 * time.Millisecond,
		StartDepth: 2,
		MaxDepth:   16,
	}
}
