package engine

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yourusername/utttengine/pkg/game"
)

// modelBoost is the maximum positional-weight adjustment the opponent model
// may contribute per sub-board. Kept small so modeled preferences bias
// tie-breaks without overriding the static positional values.
const modelBoost = 40

// modelWindow is how many recent opponent moves feed the model.
const modelWindow = 12

// OpponentModel captures where the opponent has been concentrating play,
// derived from the recent move log. Sub-boards the opponent favors get a
// positional boost: contesting them denies the opponent territory it
// demonstrably wants.
type OpponentModel struct {
	CellBias [9]float64 // normalized visit frequency per sub-board, sums to 1
}

// ModelFromLog builds an opponent model for the given opponent mark from a
// move log. Returns nil when the log holds no opponent moves, in which case
// evaluation proceeds unmodeled.
func ModelFromLog(log []game.MoveRecord, opponent game.Mark) *OpponentModel {
	var counts [9]float64
	seen := 0
	for i := len(log) - 1; i >= 0 && seen < modelWindow; i-- {
		if log[i].Mark != opponent {
			continue
		}
		counts[log[i].Sub]++
		seen++
	}
	if seen == 0 {
		return nil
	}

	m := &OpponentModel{CellBias: counts}
	floats.Scale(1/floats.Sum(m.CellBias[:]), m.CellBias[:])
	return m
}

// Boost returns the positional-weight adjustment for a sub-board.
func (m *OpponentModel) Boost(sub int) int {
	return int(m.CellBias[sub] * modelBoost)
}

// Fingerprint folds the model into 16 bits for cache keying. Two states
// searched under different models must not share cached scores.
func (m *OpponentModel) Fingerprint() uint16 {
	if m == nil {
		return 0
	}
	var fp uint16
	for i := 0; i < 9; i++ {
		// quantize each bias to 7 levels and mix
		q := uint16(m.CellBias[i] * 6)
		fp = fp*31 + q + 1
	}
	return fp
}
