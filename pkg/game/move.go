package game

import "fmt"

// IsLegal reports whether the mover may play the given cell. It is a pure
// function of (state, move): false once the game is decided, when the move
// ignores the forced sub-board, targets a finished sub-board, or targets an
// occupied cell.
func IsLegal(state BoardState, m Move) bool {
	if state.Result != OutcomeNone {
		return false
	}
	if m.Sub < 0 || m.Sub > 8 || m.Cell < 0 || m.Cell > 8 {
		return false
	}
	if state.Active != FreeBoard && state.Active != m.Sub {
		return false
	}
	sb := state.Subs[m.Sub]
	if sb.Outcome != OutcomeNone {
		return false
	}
	return sb.Filled()&(1<<m.Cell) == 0
}

// Apply plays the move for the current player and returns the resulting
// state. Callers must check IsLegal first; Apply does not re-validate.
// The input state is left untouched.
func Apply(state BoardState, m Move) BoardState {
	next := Simulate(state, m)
	log := make([]MoveRecord, len(state.Log)+1)
	copy(log, state.Log)
	log[len(state.Log)] = MoveRecord{Sub: m.Sub, Cell: m.Cell, Mark: state.ToMove}
	next.Log = log
	return next
}

// Simulate is Apply without the move-log copy. Search and analysis create
// thousands of positions whose history is never read, so Simulate skips the
// allocation; the shared log slice is never appended through. Like Apply it
// assumes the move is legal.
func Simulate(state BoardState, m Move) BoardState {
	next := state
	pi := playerIndex(state.ToMove)
	next.Subs[m.Sub].Cells[pi] |= 1 << m.Cell

	// A sub-board's outcome freezes once set.
	if out := lineWinner(next.Subs[m.Sub].Cells[0], next.Subs[m.Sub].Cells[1], 0); out != OutcomeNone {
		next.Subs[m.Sub].Outcome = out
		next.Macro[m.Sub] = out
		next.Result = macroResult(next.Macro)
	}

	// The played cell points the opponent at their sub-board; a finished
	// target collapses to a free choice for the next mover.
	if next.Subs[m.Cell].Outcome != OutcomeNone {
		next.Active = FreeBoard
	} else {
		next.Active = m.Cell
	}

	next.ToMove = state.ToMove.Other()
	next.Last = m
	return next
}

// LegalMoves enumerates the legal moves in ascending sub-board then cell
// order. The ordering is deterministic and is relied on for tie-breaking
// in move ranking. A decided game has no legal moves.
func LegalMoves(state BoardState) []Move {
	if state.Result != OutcomeNone {
		return nil
	}
	moves := make([]Move, 0, 16)
	if state.Active != FreeBoard {
		appendSubMoves(&moves, state.Subs[state.Active], state.Active)
		return moves
	}
	for sub := int8(0); sub < 9; sub++ {
		if state.Subs[sub].Outcome == OutcomeNone {
			appendSubMoves(&moves, state.Subs[sub], sub)
		}
	}
	return moves
}

func appendSubMoves(moves *[]Move, sb SubBoard, sub int8) {
	filled := sb.Filled()
	for cell := int8(0); cell < 9; cell++ {
		if filled&(1<<cell) == 0 {
			*moves = append(*moves, Move{Sub: sub, Cell: cell})
		}
	}
}

// Replay folds Apply over a move log from the empty initial state. Each
// entry is validated against the reconstructed state, so a corrupted or
// out-of-order log is rejected rather than silently producing a bad board.
// Replaying the same log twice yields identical states.
func Replay(log []MoveRecord) (BoardState, error) {
	state := NewGame()
	for i, rec := range log {
		m := Move{Sub: rec.Sub, Cell: rec.Cell}
		if rec.Mark != state.ToMove {
			return BoardState{}, fmt.Errorf("replay: move %d: %s played out of turn", i+1, rec.Mark)
		}
		if !IsLegal(state, m) {
			return BoardState{}, fmt.Errorf("replay: move %d: %s is illegal", i+1, FormatMove(m))
		}
		state = Apply(state, m)
	}
	return state, nil
}

// ReplayPrefix replays the first n entries of a log. Undo is a replay of a
// truncated prefix; redo replays one entry further.
func ReplayPrefix(log []MoveRecord, n int) (BoardState, error) {
	if n < 0 || n > len(log) {
		return BoardState{}, fmt.Errorf("replay: prefix %d out of range (log has %d moves)", n, len(log))
	}
	return Replay(log[:n])
}
