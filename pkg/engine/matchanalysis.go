package engine

import (
	"fmt"

	"github.com/yourusername/utttengine/pkg/game"
)

// RatingType grades a player's overall quality over a game.
type RatingType int

const (
	RatingUndefined RatingType = iota
	RatingBeginner             // > 400 average loss per move
	RatingCasual               // 200-400
	RatingIntermediate         // 100-200
	RatingAdvanced             // 40-100
	RatingExpert               // < 40
)

// String returns the display name of the rating.
func (r RatingType) String() string {
	return [...]string{
		"Undefined", "Beginner", "Casual", "Intermediate", "Advanced", "Expert",
	}[r]
}

// GetRating grades average score loss per non-forced move. Lower is better.
func GetRating(avgLoss float64) RatingType {
	switch {
	case avgLoss < 40:
		return RatingExpert
	case avgLoss < 100:
		return RatingAdvanced
	case avgLoss < 200:
		return RatingIntermediate
	case avgLoss < 400:
		return RatingCasual
	}
	return RatingBeginner
}

// PlayerReview aggregates move-quality results for one player.
type PlayerReview struct {
	Mark       game.Mark
	Moves      int // moves played, forced included
	LabelCount map[MoveLabel]int
	TotalLoss  int
	AvgLoss    float64 // per non-forced move
	Rating     RatingType
}

// GameReview is the full post-game analysis of one move log.
type GameReview struct {
	Moves   []MoveAnalysis // one entry per log record, in order
	Players [2]PlayerReview
	Result  game.Outcome
}

// ReviewGame replays a move log from the empty board and classifies every
// move. The log must be a legal game prefix.
func (e *Engine) ReviewGame(log []game.MoveRecord) (*GameReview, error) {
	review := &GameReview{
		Moves: make([]MoveAnalysis, 0, len(log)),
	}
	for i, mark := range []game.Mark{game.Cross, game.Nought} {
		review.Players[i] = PlayerReview{
			Mark:       mark,
			LabelCount: make(map[MoveLabel]int),
		}
	}

	state := game.NewGame()
	for i, rec := range log {
		if rec.Mark != state.ToMove {
			return nil, fmt.Errorf("review: move %d played by %s out of turn", i+1, rec.Mark)
		}
		m := game.Move{Sub: rec.Sub, Cell: rec.Cell}

		analysis, err := e.Classify(state, m)
		if err != nil {
			return nil, fmt.Errorf("review: move %d: %w", i+1, err)
		}
		review.Moves = append(review.Moves, *analysis)

		p := &review.Players[playerBit(rec.Mark)]
		p.Moves++
		p.LabelCount[analysis.Label]++
		p.TotalLoss += analysis.Loss

		state = game.Apply(state, m)
	}
	review.Result = state.Result

	for i := range review.Players {
		p := &review.Players[i]
		graded := p.Moves - p.LabelCount[LabelForced]
		if graded > 0 {
			p.AvgLoss = float64(p.TotalLoss) / float64(graded)
			p.Rating = GetRating(p.AvgLoss)
		}
	}
	return review, nil
}
