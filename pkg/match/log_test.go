package match

import (
	"strings"
	"testing"

	"github.com/yourusername/utttengine/pkg/game"
)

const sampleRecord = `# Event: test game
# Date: 2026-08-25
# PlayerX: alice
# PlayerO: bob

1. X 4/4
2. O 4/0
3. X 0/4
`

func TestImport(t *testing.T) {
	g, err := Import(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}
	if g.Event != "test game" || g.PlayerX != "alice" || g.PlayerO != "bob" {
		t.Errorf("headers not parsed: %+v", g)
	}
	if len(g.Log) != 3 {
		t.Fatalf("parsed %d moves, want 3", len(g.Log))
	}
	if g.Log[2] != (game.MoveRecord{Sub: 0, Cell: 4, Mark: game.Cross}) {
		t.Errorf("move 3 = %+v", g.Log[2])
	}

	state, err := g.FinalState()
	if err != nil {
		t.Fatal(err)
	}
	if state.ToMove != game.Nought || state.Active != 4 {
		t.Errorf("final state: %s to move in sub %d", state.ToMove, state.Active)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	orig, err := Import(strings.NewReader(sampleRecord))
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := orig.Export(&buf); err != nil {
		t.Fatal(err)
	}

	again, err := Import(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("exported record does not import: %v\n%s", err, buf.String())
	}
	if len(again.Log) != len(orig.Log) {
		t.Fatalf("round trip changed move count: %d vs %d", len(again.Log), len(orig.Log))
	}
	for i := range orig.Log {
		if again.Log[i] != orig.Log[i] {
			t.Errorf("move %d changed: %+v vs %+v", i+1, again.Log[i], orig.Log[i])
		}
	}
	if again.PlayerX != orig.PlayerX || again.Event != orig.Event {
		t.Error("headers lost in round trip")
	}
}

func TestImportRejects(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"garbage line", "1. X 4/4\nnot a move\n"},
		{"bad numbering", "1. X 4/4\n3. O 4/0\n"},
		{"illegal replay", "1. X 4/4\n2. O 7/0\n"},
		{"out of turn", "1. O 4/4\n"},
		{"bad notation", "1. X 9/9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import(strings.NewReader(tt.record)); err == nil {
				t.Error("corrupt record accepted")
			}
		})
	}
}
