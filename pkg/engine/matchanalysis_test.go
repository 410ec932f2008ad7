package engine

import (
	"testing"

	"github.com/yourusername/utttengine/pkg/game"
)

func playedLog(t *testing.T, moves ...game.Move) []game.MoveRecord {
	t.Helper()
	state := game.NewGame()
	for _, m := range moves {
		if !game.IsLegal(state, m) {
			t.Fatalf("move %v illegal in test setup", m)
		}
		state = game.Apply(state, m)
	}
	return state.Log
}

func TestReviewGame(t *testing.T) {
	e := newTestEngine(t)
	log := playedLog(t,
		game.Move{Sub: 4, Cell: 4},
		game.Move{Sub: 4, Cell: 0},
		game.Move{Sub: 0, Cell: 4},
		game.Move{Sub: 4, Cell: 8},
	)

	review, err := e.ReviewGame(log)
	if err != nil {
		t.Fatal(err)
	}
	if len(review.Moves) != 4 {
		t.Fatalf("reviewed %d moves, want 4", len(review.Moves))
	}
	if review.Players[0].Mark != game.Cross || review.Players[1].Mark != game.Nought {
		t.Error("player slots must map X then O")
	}
	if review.Players[0].Moves != 2 || review.Players[1].Moves != 2 {
		t.Errorf("move counts %d/%d, want 2/2",
			review.Players[0].Moves, review.Players[1].Moves)
	}
	if review.Result != game.OutcomeNone {
		t.Errorf("result = %v, want an unfinished game", review.Result)
	}

	for i := range review.Players {
		total := 0
		for _, n := range review.Players[i].LabelCount {
			total += n
		}
		if total != review.Players[i].Moves {
			t.Errorf("player %d label counts %d do not cover %d moves",
				i, total, review.Players[i].Moves)
		}
	}
}

func TestReviewGameRejectsCorruptLog(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		log  []game.MoveRecord
	}{
		{"out of turn", []game.MoveRecord{{Sub: 0, Cell: 0, Mark: game.Nought}}},
		{"illegal move", []game.MoveRecord{
			{Sub: 0, Cell: 4, Mark: game.Cross},
			{Sub: 7, Cell: 0, Mark: game.Nought},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.ReviewGame(tt.log); err == nil {
				t.Error("corrupt log accepted")
			}
		})
	}
}

func TestGetRating(t *testing.T) {
	tests := []struct {
		avgLoss float64
		want    RatingType
	}{
		{10, RatingExpert},
		{60, RatingAdvanced},
		{150, RatingIntermediate},
		{300, RatingCasual},
		{800, RatingBeginner},
	}
	for _, tt := range tests {
		if got := GetRating(tt.avgLoss); got != tt.want {
			t.Errorf("GetRating(%.0f) = %v, want %v", tt.avgLoss, got, tt.want)
		}
	}
}
