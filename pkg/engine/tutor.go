package engine

import (
	"fmt"

	"github.com/yourusername/utttengine/pkg/game"
)

// MoveLabel is the quality rating of a played move.
type MoveLabel int

const (
	LabelBrilliant  MoveLabel = iota // best move with a decisive or near-decisive score
	LabelBest                        // matches the top-ranked move
	LabelGood                        // small loss against the best move
	LabelInaccuracy                  // meaningful loss
	LabelBlunder                     // large loss
	LabelForced                      // only one legal move, quality is moot
)

// String returns the display name of the label.
func (l MoveLabel) String() string {
	return [...]string{"Brilliant", "Best", "Good", "Inaccuracy", "Blunder", "Forced"}[l]
}

// Abbr returns the annotation-style abbreviation (!!, !, ?!, ??).
func (l MoveLabel) Abbr() string {
	return [...]string{"!!", "!", "", "?!", "??", ""}[l]
}

// ClassifyThresholds are the score-loss boundaries between labels, in
// evaluation units. Good must be below Inaccuracy; NewEngine enforces it.
type ClassifyThresholds struct {
	Good       int // loss <= Good is still Good
	Inaccuracy int // loss <= Inaccuracy is an Inaccuracy, above is a Blunder
	Brilliant  int // best-move score >= Brilliant upgrades Best to Brilliant
}

// DefaultThresholds returns the default classification boundaries.
func DefaultThresholds() ClassifyThresholds {
	return ClassifyThresholds{
		Good:       150,
		Inaccuracy: 700,
		Brilliant:  2500,
	}
}

// MoveAnalysis is the quality report for one played move.
type MoveAnalysis struct {
	Move      game.Move
	Label     MoveLabel
	Score     int        // one-ply score of the played move
	BestMove  *game.Move // nil when the played move was already best or forced
	BestScore int
	Loss      int // BestScore - Score, never negative
}

// Classify rates a played move against the ranked alternatives from the
// position it was played in. The played move must be legal in prev.
func (e *Engine) Classify(prev game.BoardState, played game.Move) (*MoveAnalysis, error) {
	if !game.IsLegal(prev, played) {
		return nil, fmt.Errorf("classify: move %s is not legal here", game.FormatMove(played))
	}

	result, err := e.AnalyzePosition(prev)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	analysis := &MoveAnalysis{Move: played}
	if result.NumMoves <= 1 {
		analysis.Label = LabelForced
		analysis.Score = result.BestScore
		analysis.BestScore = result.BestScore
		return analysis, nil
	}

	for _, m := range result.Moves {
		if m.Move == played {
			analysis.Score = m.Score
			break
		}
	}
	analysis.BestScore = result.BestScore
	analysis.Loss = result.BestScore - analysis.Score
	if analysis.Loss < 0 {
		analysis.Loss = 0
	}

	switch {
	case analysis.Loss == 0 || played == result.BestMove:
		analysis.Label = LabelBest
		if analysis.Score >= e.thresholds.Brilliant {
			analysis.Label = LabelBrilliant
		}
	case analysis.Loss <= e.thresholds.Good:
		analysis.Label = LabelGood
	case analysis.Loss <= e.thresholds.Inaccuracy:
		analysis.Label = LabelInaccuracy
	default:
		analysis.Label = LabelBlunder
	}

	if analysis.Label != LabelBest && analysis.Label != LabelBrilliant {
		best := result.BestMove
		analysis.BestMove = &best
	}
	return analysis, nil
}
