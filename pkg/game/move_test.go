package game

import "testing"

// mustPlay applies a sequence of moves in "sub/cell" notation.
func mustPlay(t *testing.T, state BoardState, moves ...string) BoardState {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("bad move %q: %v", s, err)
		}
		if !IsLegal(state, m) {
			t.Fatalf("move %s is illegal at:\n%s", s, Render(state))
		}
		state = Apply(state, m)
	}
	return state
}

func TestInitialLegalMoves(t *testing.T) {
	moves := LegalMoves(NewGame())
	if len(moves) != 81 {
		t.Fatalf("initial position has %d legal moves, want 81", len(moves))
	}
	// Enumeration order is ascending sub-board then cell.
	if moves[0] != (Move{0, 0}) || moves[80] != (Move{8, 8}) {
		t.Errorf("enumeration order broken: first %v, last %v", moves[0], moves[80])
	}
}

func TestMoveRouting(t *testing.T) {
	state := mustPlay(t, NewGame(), "0/4")
	if state.Active != 4 {
		t.Errorf("playing cell 4 should force sub-board 4, got %d", state.Active)
	}
	if state.ToMove != Nought {
		t.Error("turn should pass to O")
	}

	moves := LegalMoves(state)
	if len(moves) != 9 {
		t.Fatalf("forced sub-board should offer 9 moves, got %d", len(moves))
	}
	for _, m := range moves {
		if m.Sub != 4 {
			t.Fatalf("move %v escapes the forced sub-board", m)
		}
	}
}

func TestIsLegal(t *testing.T) {
	state := mustPlay(t, NewGame(), "0/4", "4/0")
	tests := []struct {
		name string
		move Move
		want bool
	}{
		{"in forced sub", Move{0, 0}, true},
		{"occupied cell", Move{0, 4}, false},
		{"outside forced sub", Move{3, 3}, false},
		{"sub out of range", Move{9, 0}, false},
		{"cell out of range", Move{0, 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegal(state, tt.move); got != tt.want {
				t.Errorf("IsLegal(%v) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestSubBoardWinAndFreeze(t *testing.T) {
	state := mustPlay(t, NewGame(),
		"4/1", // X opens in the center sub-board, sends O to 1
		"1/4", // O points back to the center
		"4/7", // X builds the middle column, sends O to 7
		"7/4", // O points back to the center
		"4/4", // X completes the middle column of sub 4
	)
	if state.Subs[4].Outcome != OutcomeCross {
		t.Fatalf("sub-board 4 outcome = %v, want X", state.Subs[4].Outcome)
	}
	if state.Macro[4] != OutcomeCross {
		t.Error("macro board must mirror the sub-board outcome")
	}
	// The winning move pointed at the now-finished sub-board 4: free choice.
	if state.Active != FreeBoard {
		t.Errorf("pointer at a finished sub-board should collapse to free, got %d", state.Active)
	}

	// The finished sub-board is inert: no legal move may enter it.
	for _, m := range LegalMoves(state) {
		if m.Sub == 4 {
			t.Fatalf("move %v enters a finished sub-board", m)
		}
	}
}

func TestFullSubBoardDraw(t *testing.T) {
	// Fill sub-board 0 with no line for either side:
	//   X O X
	//   X O O
	//   O X X
	cells := [9][2]uint16{}
	cells[0][0] = 0b110001101 // X at 0,2,3,7,8
	cells[0][1] = 0b001110010 // O at 1,4,5,6
	state, err := FromCells(cells, Cross, FreeBoard)
	if err != nil {
		t.Fatal(err)
	}
	if state.Subs[0].Outcome != OutcomeDraw {
		t.Fatalf("full sub-board with no line = %v, want draw", state.Subs[0].Outcome)
	}
	if state.Macro[0] != OutcomeDraw {
		t.Error("macro board must record the drawn sub-board")
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	state := NewGame()
	before := state
	next := Apply(state, Move{0, 0})
	if !EqualStates(state, before) {
		t.Fatal("Apply mutated its input")
	}
	if EqualStates(state, next) {
		t.Fatal("Apply returned an unchanged state")
	}

	// The returned state's log is independent of the input's.
	next2 := Apply(next, Move{0, 1})
	if len(next.Log) != 1 || len(next2.Log) != 2 {
		t.Fatalf("log lengths %d, %d; want 1, 2", len(next.Log), len(next2.Log))
	}
}

func TestReplayDeterminism(t *testing.T) {
	state := mustPlay(t, NewGame(), "4/4", "4/0", "0/4", "4/8", "8/4")

	replayed, err := Replay(state.Log)
	if err != nil {
		t.Fatal(err)
	}
	if !EqualStates(state, replayed) {
		t.Error("replay of a log must reproduce the state")
	}

	again, err := Replay(state.Log)
	if err != nil {
		t.Fatal(err)
	}
	if !EqualStates(replayed, again) {
		t.Error("replay must be deterministic")
	}
}

func TestReplayRejectsBadLogs(t *testing.T) {
	tests := []struct {
		name string
		log  []MoveRecord
	}{
		{"out of turn", []MoveRecord{{Sub: 0, Cell: 0, Mark: Nought}}},
		{"double move", []MoveRecord{
			{Sub: 0, Cell: 0, Mark: Cross},
			{Sub: 0, Cell: 1, Mark: Cross},
		}},
		{"ignores forced sub", []MoveRecord{
			{Sub: 0, Cell: 4, Mark: Cross},
			{Sub: 5, Cell: 0, Mark: Nought},
		}},
		{"occupied cell", []MoveRecord{
			{Sub: 0, Cell: 0, Mark: Cross},
			{Sub: 0, Cell: 0, Mark: Nought},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Replay(tt.log); err == nil {
				t.Error("corrupted log accepted")
			}
		})
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	state := mustPlay(t, NewGame(), "4/4", "4/0", "0/4", "4/8")

	undone, err := ReplayPrefix(state.Log, len(state.Log)-1)
	if err != nil {
		t.Fatal(err)
	}
	if len(undone.Log) != 3 || undone.ToMove != Nought {
		t.Fatalf("undo state wrong: %d moves, %s to move", len(undone.Log), undone.ToMove)
	}

	rec := state.Log[len(state.Log)-1]
	redone := Apply(undone, Move{Sub: rec.Sub, Cell: rec.Cell})
	if !EqualStates(state, redone) {
		t.Error("undo then redo must restore the exact state")
	}

	if _, err := ReplayPrefix(state.Log, 99); err == nil {
		t.Error("out-of-range prefix accepted")
	}
}

func TestGameWin(t *testing.T) {
	// Hand-build a position where X owns macro cells 0 and 1 and wins
	// sub-board 2 to complete the top macro row.
	var cells [9][2]uint16
	cells[0][0] = 0b000000111 // sub 0 won by X
	cells[1][0] = 0b000000111 // sub 1 won by X
	cells[2][0] = 0b000000011 // sub 2: X needs cell 2
	cells[2][1] = 0b000011000
	cells[3][1] = 0b000000111 // sub 3 won by O
	cells[4][1] = 0b000000011
	state, err := FromCells(cells, Cross, 2)
	if err != nil {
		t.Fatal(err)
	}
	if state.Result != OutcomeNone {
		t.Fatalf("premature result %v", state.Result)
	}

	final := Apply(state, Move{Sub: 2, Cell: 2})
	if final.Result != OutcomeCross {
		t.Fatalf("result = %v, want X", final.Result)
	}
	if len(LegalMoves(final)) != 0 {
		t.Error("a decided game has no legal moves")
	}
	if IsLegal(final, Move{4, 8}) {
		t.Error("no move is legal after the game is decided")
	}
}
