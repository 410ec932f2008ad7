package gameid

import (
	"strings"
	"testing"

	"github.com/yourusername/utttengine/pkg/game"
)

func buildState(t *testing.T, moves ...game.Move) game.BoardState {
	t.Helper()
	state := game.NewGame()
	for _, m := range moves {
		if !game.IsLegal(state, m) {
			t.Fatalf("move %v illegal in test setup", m)
		}
		state = game.Apply(state, m)
	}
	return state
}

func TestKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		moves []game.Move
	}{
		{"initial", nil},
		{"one move", []game.Move{{Sub: 4, Cell: 4}}},
		{"forced chain", []game.Move{{Sub: 4, Cell: 4}, {Sub: 4, Cell: 0}, {Sub: 0, Cell: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := buildState(t, tt.moves...)
			key := MakeKey(state)

			decoded, err := StateFromKey(key)
			if err != nil {
				t.Fatal(err)
			}
			if decoded.Subs != state.Subs || decoded.Macro != state.Macro {
				t.Error("cells and macro board must survive the round trip")
			}
			if decoded.Active != state.Active || decoded.ToMove != state.ToMove {
				t.Error("forced sub-board and side to move must survive the round trip")
			}
			if decoded.Result != state.Result {
				t.Error("result must be recomputed identically")
			}
		})
	}
}

func TestKeyIgnoresHistory(t *testing.T) {
	// A played-out state and a log-free snapshot of the same position
	// share a key: the move log is not part of it.
	played := buildState(t,
		game.Move{Sub: 4, Cell: 4}, game.Move{Sub: 4, Cell: 0},
		game.Move{Sub: 0, Cell: 4}, game.Move{Sub: 4, Cell: 8})

	var cells [9][2]uint16
	for i := range played.Subs {
		cells[i] = played.Subs[i].Cells
	}
	snapshot, err := game.FromCells(cells, played.ToMove, played.Active)
	if err != nil {
		t.Fatal(err)
	}

	if !EqualKeys(MakeKey(played), MakeKey(snapshot)) {
		t.Error("identical positions with different histories should share a key")
	}
}

func TestStateIDRoundTrip(t *testing.T) {
	state := buildState(t, game.Move{Sub: 4, Cell: 4}, game.Move{Sub: 4, Cell: 2})

	id := StateID(state)
	if len(id) != StateIDLength {
		t.Fatalf("state ID length %d, want %d", len(id), StateIDLength)
	}

	decoded, err := StateFromID(id)
	if err != nil {
		t.Fatal(err)
	}
	if StateID(decoded) != id {
		t.Error("encode-decode-encode must be stable")
	}
	if decoded.Subs != state.Subs || decoded.Active != state.Active || decoded.ToMove != state.ToMove {
		t.Error("decoded state differs from the original")
	}
}

func TestStateFromIDRejects(t *testing.T) {
	valid := StateID(game.NewGame())

	tests := []struct {
		name string
		id   string
	}{
		{"too short", valid[:10]},
		{"too long", valid + "A"},
		{"bad character", strings.Replace(valid, string(valid[3]), "!", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := StateFromID(tt.id); err == nil {
				t.Error("invalid state ID accepted")
			}
		})
	}
}

func TestStateFromKeyRejectsBadActive(t *testing.T) {
	key := MakeKey(game.NewGame())
	// Force the 4-bit active field (bits 162-165) to an out-of-range value.
	f := bitField{data: &key.Data, pos: 162}
	key.Data[5] &^= uint32(0xF) << (162 - 160)
	f.put(12, 4)

	if _, err := StateFromKey(key); err == nil {
		t.Error("out-of-range forced sub-board accepted")
	}
}
