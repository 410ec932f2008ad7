package game

import "testing"

func TestMarkOther(t *testing.T) {
	if Cross.Other() != Nought || Nought.Other() != Cross {
		t.Error("Other should swap the players")
	}
	if NoMark.Other() != NoMark {
		t.Error("NoMark has no opponent")
	}
}

func TestLineWinner(t *testing.T) {
	tests := []struct {
		name   string
		cross  uint16
		nought uint16
		dead   uint16
		want   Outcome
	}{
		{"empty", 0, 0, 0, OutcomeNone},
		{"top row cross", 0b000000111, 0b000011000, 0, OutcomeCross},
		{"column nought", 0, 0b001001001, 0, OutcomeNought},
		{"diagonal cross", 0b100010001, 0b000101000, 0, OutcomeCross},
		{"full no line", 0b101011010, 0b010100101, 0, OutcomeDraw},
		{"dead cells complete grid", 0b000000011, 0b000011000, 0b111100100, OutcomeDraw},
		{"partial", 0b000000011, 0b000011000, 0, OutcomeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lineWinner(tt.cross, tt.nought, tt.dead); got != tt.want {
				t.Errorf("lineWinner = %v, want %v", got, tt.want)
			}
		})
	}
}

// A line completed on the last open cell is a win, not a draw.
func TestLineWinnerWinBeatsFullGrid(t *testing.T) {
	cross := uint16(0b110100111) // holds the top row
	nought := uint16(0b001011000)
	if got := lineWinner(cross, nought, 0); got != OutcomeCross {
		t.Errorf("full grid with a completed line = %v, want X", got)
	}
}

func TestNewGame(t *testing.T) {
	state := NewGame()
	if state.ToMove != Cross {
		t.Error("X moves first")
	}
	if state.Active != FreeBoard {
		t.Error("first move is a free choice")
	}
	if state.Result != OutcomeNone {
		t.Error("new game has no result")
	}
	if len(state.Log) != 0 || state.Last != NoMove {
		t.Error("new game has no history")
	}
}

func TestSubBoardCellMark(t *testing.T) {
	sb := SubBoard{Cells: [2]uint16{0b000000001, 0b000010000}}
	if sb.CellMark(0) != Cross {
		t.Error("cell 0 should be X")
	}
	if sb.CellMark(4) != Nought {
		t.Error("cell 4 should be O")
	}
	if sb.CellMark(8) != NoMark {
		t.Error("cell 8 should be empty")
	}
	if sb.Filled() != 0b000010001 {
		t.Errorf("Filled = %09b", sb.Filled())
	}
}

func TestMacroResult(t *testing.T) {
	var macro [9]Outcome
	macro[0], macro[1], macro[2] = OutcomeCross, OutcomeCross, OutcomeCross
	if macroResult(macro) != OutcomeCross {
		t.Error("top macro row should decide the game for X")
	}

	drawn := [9]Outcome{
		OutcomeCross, OutcomeNought, OutcomeCross,
		OutcomeNought, OutcomeDraw, OutcomeCross,
		OutcomeCross, OutcomeCross, OutcomeNought,
	}
	if macroResult(drawn) != OutcomeDraw {
		t.Errorf("macroResult = %v, want draw", macroResult(drawn))
	}
}
