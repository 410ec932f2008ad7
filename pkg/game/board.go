// Package game implements the ultimate tic-tac-toe board model and rules.
package game

// Mark identifies a player's piece.
type Mark uint8

const (
	NoMark Mark = iota
	Cross       // first player
	Nought      // second player
)

// String returns the display name of the mark.
func (m Mark) String() string {
	switch m {
	case Cross:
		return "X"
	case Nought:
		return "O"
	default:
		return "."
	}
}

// Other returns the opposing mark.
func (m Mark) Other() Mark {
	switch m {
	case Cross:
		return Nought
	case Nought:
		return Cross
	default:
		return NoMark
	}
}

// Outcome is the recorded result of a 3x3 grid (sub-board or macro board).
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCross
	OutcomeNought
	OutcomeDraw
)

// String returns the display name of the outcome.
func (o Outcome) String() string {
	return [...]string{"none", "X", "O", "draw"}[o]
}

// Winner returns the winning mark, if the outcome is a win.
func (o Outcome) Winner() (Mark, bool) {
	switch o {
	case OutcomeCross:
		return Cross, true
	case OutcomeNought:
		return Nought, true
	default:
		return NoMark, false
	}
}

// OutcomeFor returns the win outcome for a mark.
func OutcomeFor(m Mark) Outcome {
	if m == Cross {
		return OutcomeCross
	}
	return OutcomeNought
}

// Lines are the 8 winning patterns on a 3x3 grid as cell bitmasks:
// 3 rows, 3 columns, 2 diagonals. Cells are numbered 0-8 row-major.
var Lines = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

// fullMask has all 9 cell bits set.
const fullMask = uint16(0x1FF)

// lineWinner is the shared line-detection rule for sub-boards and the macro
// board. Lines are checked before the full-grid condition, so a win on the
// last open cell is a win, not a draw. dead marks cells that can never be
// claimed (drawn sub-boards on the macro board; zero for sub-boards).
func lineWinner(cross, nought, dead uint16) Outcome {
	for _, m := range Lines {
		if cross&m == m {
			return OutcomeCross
		}
		if nought&m == m {
			return OutcomeNought
		}
	}
	if cross|nought|dead == fullMask {
		return OutcomeDraw
	}
	return OutcomeNone
}

// SubBoard is one local 3x3 grid: a cell mask per player and an outcome.
// The outcome is computed once when set and never changes afterwards; a
// completed sub-board is permanently inert for future play.
type SubBoard struct {
	Cells   [2]uint16 // bit i set = cell i marked; index 0 = Cross, 1 = Nought
	Outcome Outcome
}

// CellMark returns the mark at a cell, or NoMark if empty.
func (s SubBoard) CellMark(cell int) Mark {
	bit := uint16(1) << cell
	if s.Cells[0]&bit != 0 {
		return Cross
	}
	if s.Cells[1]&bit != 0 {
		return Nought
	}
	return NoMark
}

// Filled returns the mask of occupied cells.
func (s SubBoard) Filled() uint16 {
	return s.Cells[0] | s.Cells[1]
}

// playerIndex maps a mark to its Cells index.
func playerIndex(m Mark) int {
	if m == Cross {
		return 0
	}
	return 1
}

// FreeBoard means the mover may choose any non-finished sub-board.
const FreeBoard = int8(-1)

// Move addresses one cell: sub-board index and cell index, both 0-8 row-major.
type Move struct {
	Sub  int8
	Cell int8
}

// NoMove is the zero move used before any move has been played.
var NoMove = Move{Sub: -1, Cell: -1}

// MoveRecord is one entry of the append-only move log.
type MoveRecord struct {
	Sub  int8
	Cell int8
	Mark Mark
}

// BoardState describes one point in a game. States are values: Apply returns
// a fresh state and never mutates its input, so states are safe to share
// read-only between searches and callers.
type BoardState struct {
	Subs   [9]SubBoard
	Macro  [9]Outcome // mirrors each SubBoard's outcome
	Active int8       // sub-board the mover must play in, or FreeBoard
	ToMove Mark
	Result Outcome
	Log    []MoveRecord // full history from the empty state
	Last   Move         // NoMove for the initial state
}

// NewGame returns the empty initial state: free choice, Cross to move.
func NewGame() BoardState {
	return BoardState{
		Active: FreeBoard,
		ToMove: Cross,
		Last:   NoMove,
	}
}

// macroMasks folds the macro board into per-player and dead-cell masks.
func macroMasks(macro [9]Outcome) (cross, nought, dead uint16) {
	for i, o := range macro {
		switch o {
		case OutcomeCross:
			cross |= 1 << i
		case OutcomeNought:
			nought |= 1 << i
		case OutcomeDraw:
			dead |= 1 << i
		}
	}
	return cross, nought, dead
}

// macroResult derives the whole-game result from the macro board using the
// same line rule applied to sub-boards.
func macroResult(macro [9]Outcome) Outcome {
	cross, nought, dead := macroMasks(macro)
	return lineWinner(cross, nought, dead)
}

// EqualStates reports whether two states describe the same position,
// including their move logs.
func EqualStates(a, b BoardState) bool {
	if a.Subs != b.Subs || a.Macro != b.Macro ||
		a.Active != b.Active || a.ToMove != b.ToMove ||
		a.Result != b.Result || a.Last != b.Last {
		return false
	}
	if len(a.Log) != len(b.Log) {
		return false
	}
	for i := range a.Log {
		if a.Log[i] != b.Log[i] {
			return false
		}
	}
	return true
}
