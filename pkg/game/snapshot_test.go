package game

import "testing"

func TestFromCellsRecomputesDerivedState(t *testing.T) {
	var cells [9][2]uint16
	cells[0][0] = 0b000000111 // sub 0 won by X
	cells[4][1] = 0b001001001 // sub 4 won by O
	cells[7][0] = 0b000000001

	state, err := FromCells(cells, Nought, 7)
	if err != nil {
		t.Fatal(err)
	}
	if state.Subs[0].Outcome != OutcomeCross || state.Macro[0] != OutcomeCross {
		t.Error("sub 0 should be recomputed as won by X")
	}
	if state.Subs[4].Outcome != OutcomeNought || state.Macro[4] != OutcomeNought {
		t.Error("sub 4 should be recomputed as won by O")
	}
	if state.Result != OutcomeNone {
		t.Errorf("result = %v, want none", state.Result)
	}
	if state.Active != 7 || state.ToMove != Nought {
		t.Error("forced sub-board and side to move must be preserved")
	}
	if len(state.Log) != 0 || state.Last != NoMove {
		t.Error("snapshots carry no history")
	}
}

func TestFromCellsCollapsesFinishedTarget(t *testing.T) {
	var cells [9][2]uint16
	cells[3][0] = 0b000000111
	state, err := FromCells(cells, Nought, 3)
	if err != nil {
		t.Fatal(err)
	}
	if state.Active != FreeBoard {
		t.Errorf("pointer at a finished sub-board should collapse to free, got %d", state.Active)
	}
}

func TestFromCellsRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*[9][2]uint16) (Mark, int8)
	}{
		{"bad side to move", func(c *[9][2]uint16) (Mark, int8) { return NoMark, FreeBoard }},
		{"active out of range", func(c *[9][2]uint16) (Mark, int8) { return Cross, 9 }},
		{"mask beyond cell 8", func(c *[9][2]uint16) (Mark, int8) {
			c[2][0] = 1 << 9
			return Cross, FreeBoard
		}},
		{"overlapping marks", func(c *[9][2]uint16) (Mark, int8) {
			c[5][0], c[5][1] = 1, 1
			return Cross, FreeBoard
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cells [9][2]uint16
			toMove, active := tt.mutate(&cells)
			if _, err := FromCells(cells, toMove, active); err == nil {
				t.Error("invalid snapshot accepted")
			}
		})
	}
}

func TestMoveCount(t *testing.T) {
	if MoveCount(NewGame()) != 0 {
		t.Error("empty board has zero marks")
	}
	state := Apply(Apply(NewGame(), Move{0, 4}), Move{4, 0})
	if got := MoveCount(state); got != 2 {
		t.Errorf("MoveCount = %d, want 2", got)
	}
}
