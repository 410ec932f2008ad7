package game

import (
	"strings"
	"testing"
)

func TestFormatParseMove(t *testing.T) {
	m := Move{Sub: 4, Cell: 7}
	if got := FormatMove(m); got != "4/7" {
		t.Errorf("FormatMove = %q, want 4/7", got)
	}

	parsed, err := ParseMove(" 4/7 ")
	if err != nil {
		t.Fatal(err)
	}
	if parsed != m {
		t.Errorf("ParseMove = %v, want %v", parsed, m)
	}
}

func TestParseMoveRejects(t *testing.T) {
	for _, s := range []string{"", "4", "4/9", "9/4", "-1/0", "a/b", "4/7/2"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) should fail", s)
		}
	}
}

func TestRender(t *testing.T) {
	state := Apply(NewGame(), Move{Sub: 0, Cell: 0})
	out := Render(state)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("rendered board has %d lines, want 11", len(lines))
	}
	if !strings.HasPrefix(lines[0], "X") {
		t.Errorf("top-left cell should render as X: %q", lines[0])
	}
	if !strings.Contains(out, "------+-------+------") {
		t.Error("macro rows should be separated by rulers")
	}
}
