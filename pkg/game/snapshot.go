package game

import (
	"fmt"
	"math/bits"
)

// FromCells builds a board state from raw cell masks, the side to move and
// the forced sub-board. Sub-board outcomes, the macro board and the game
// result are recomputed from the masks; the move log is empty.
//
// This is the entry point for externally supplied snapshots (peer
// resynchronization, decoded state IDs). The snapshot is trusted as the new
// source of truth, so no move-by-move legality check is performed — only
// structural validation that the masks describe a representable board.
func FromCells(cells [9][2]uint16, toMove Mark, active int8) (BoardState, error) {
	if toMove != Cross && toMove != Nought {
		return BoardState{}, fmt.Errorf("snapshot: invalid side to move %d", toMove)
	}
	if active != FreeBoard && (active < 0 || active > 8) {
		return BoardState{}, fmt.Errorf("snapshot: forced sub-board %d out of range", active)
	}

	state := BoardState{
		Active: active,
		ToMove: toMove,
		Last:   NoMove,
	}
	for i := 0; i < 9; i++ {
		cross, nought := cells[i][0], cells[i][1]
		if cross&^fullMask != 0 || nought&^fullMask != 0 {
			return BoardState{}, fmt.Errorf("snapshot: sub-board %d mask has bits beyond cell 8", i)
		}
		if cross&nought != 0 {
			return BoardState{}, fmt.Errorf("snapshot: sub-board %d has a cell marked by both players", i)
		}
		state.Subs[i] = SubBoard{
			Cells:   [2]uint16{cross, nought},
			Outcome: lineWinner(cross, nought, 0),
		}
		state.Macro[i] = state.Subs[i].Outcome
	}
	state.Result = macroResult(state.Macro)

	// A forced pointer at a finished sub-board collapses to a free choice,
	// mirroring what Apply would have produced.
	if state.Active != FreeBoard && state.Subs[state.Active].Outcome != OutcomeNone {
		state.Active = FreeBoard
	}
	return state, nil
}

// MoveCount returns the number of marks on the whole board. Snapshot states
// carry no move log, so this is the position's move counter.
func MoveCount(state BoardState) int {
	n := 0
	for i := range state.Subs {
		n += bits.OnesCount16(state.Subs[i].Filled())
	}
	return n
}
