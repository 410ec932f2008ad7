package engine

import (
	"math/bits"

	"github.com/yourusername/utttengine/pkg/game"
)

// Evaluate scores a state from one player's perspective. A decisive result
// returns ±Win (0 for a draw) and dominates every heuristic term. The
// heuristic part combines, in priority order: macro-line threats, captured
// sub-board positional values, and tactical penalties for where the last
// move sends the opponent.
func (e *Engine) Evaluate(state game.BoardState, perspective game.Mark) int {
	return e.evaluate(state, perspective, nil)
}

func (e *Engine) evaluate(state game.BoardState, perspective game.Mark, model *OpponentModel) int {
	w := e.weights

	if state.Result != game.OutcomeNone {
		if state.Result == game.OutcomeDraw {
			return 0
		}
		if winner, _ := state.Result.Winner(); winner == perspective {
			return w.Win
		}
		return -w.Win
	}

	score := e.macroLineScore(state, perspective)
	score += e.captureScore(state, perspective, model)
	score += e.tacticalScore(state, perspective)
	return score
}

// macroLineScore scores open macro lines. A line holding a drawn sub-board
// or marks from both players can never complete and contributes nothing.
func (e *Engine) macroLineScore(state game.BoardState, perspective game.Mark) int {
	w := e.weights

	var cross, nought, dead uint16
	for i, o := range state.Macro {
		switch o {
		case game.OutcomeCross:
			cross |= 1 << i
		case game.OutcomeNought:
			nought |= 1 << i
		case game.OutcomeDraw:
			dead |= 1 << i
		}
	}
	own, opp := cross, nought
	if perspective == game.Nought {
		own, opp = nought, cross
	}

	score := 0
	for _, line := range game.Lines {
		if line&dead != 0 {
			continue
		}
		o := bits.OnesCount16(own & line)
		p := bits.OnesCount16(opp & line)
		if o > 0 && p > 0 {
			continue
		}
		switch o {
		case 2:
			score += w.MacroTwoOwn
		case 1:
			score += w.MacroOneOwn
		}
		switch p {
		case 2:
			score -= w.MacroTwoOpp
		case 1:
			score -= w.MacroOneOpp
		}
	}
	return score
}

// captureScore sums positional values of owned sub-boards. Drawn sub-boards
// are dead weight charged to both sides.
func (e *Engine) captureScore(state game.BoardState, perspective game.Mark, model *OpponentModel) int {
	score := 0
	for i, o := range state.Macro {
		v := e.subValues[i]
		if model != nil {
			v += model.Boost(i)
		}
		switch o {
		case game.OutcomeDraw:
			score -= e.weights.SubDraw
		case game.OutcomeCross, game.OutcomeNought:
			winner, _ := o.Winner()
			if winner == perspective {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}

// tacticalScore penalizes the player whose last move hands the opponent a
// free choice, or worse, points them at a sub-board they can win at once.
func (e *Engine) tacticalScore(state game.BoardState, perspective game.Mark) int {
	if game.MoveCount(state) == 0 {
		return 0
	}
	sender := state.ToMove.Other()

	penalty := 0
	if state.Active == game.FreeBoard {
		penalty = e.weights.SendFree
	} else if winningCells(state.Subs[state.Active], state.ToMove) != 0 {
		penalty = e.weights.SendWinnable
	}
	if sender == perspective {
		return -penalty
	}
	return penalty
}

// winningCells returns the mask of empty cells that would complete a line
// for the given mark in the sub-board. Zero for a finished sub-board.
func winningCells(sb game.SubBoard, m game.Mark) uint16 {
	if sb.Outcome != game.OutcomeNone {
		return 0
	}
	var own uint16
	if m == game.Cross {
		own = sb.Cells[0]
	} else {
		own = sb.Cells[1]
	}
	filled := sb.Filled()

	var wins uint16
	for _, line := range game.Lines {
		if bits.OnesCount16(own&line) != 2 {
			continue
		}
		rem := line &^ own
		if rem&filled == 0 {
			wins |= rem
		}
	}
	return wins
}
