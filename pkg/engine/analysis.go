package engine

import (
	"fmt"
	"sort"

	"github.com/yourusername/utttengine/pkg/game"
)

// MoveWithScore pairs a legal move with its one-ply evaluation.
type MoveWithScore struct {
	Move  game.Move
	Score int
}

// AnalysisResult holds every legal move ranked best-first.
type AnalysisResult struct {
	Moves     []MoveWithScore
	BestMove  game.Move
	BestScore int
	NumMoves  int
}

// AnalyzePosition evaluates every legal move one ply deep from the mover's
// perspective and returns them ranked best-first. Ties keep enumeration
// order (ascending sub-board, then cell), so ranking is deterministic.
func (e *Engine) AnalyzePosition(state game.BoardState) (*AnalysisResult, error) {
	if state.Result != game.OutcomeNone {
		return nil, fmt.Errorf("analysis: game is over (%s)", state.Result)
	}

	moves := game.LegalMoves(state)
	result := &AnalysisResult{
		Moves:    make([]MoveWithScore, 0, len(moves)),
		NumMoves: len(moves),
	}
	for _, m := range moves {
		next := game.Simulate(state, m)
		result.Moves = append(result.Moves, MoveWithScore{
			Move:  m,
			Score: e.Evaluate(next, state.ToMove),
		})
	}

	sort.SliceStable(result.Moves, func(i, j int) bool {
		return result.Moves[i].Score > result.Moves[j].Score
	})

	if len(result.Moves) > 0 {
		result.BestMove = result.Moves[0].Move
		result.BestScore = result.Moves[0].Score
	} else {
		result.BestMove = game.NoMove
	}
	return result, nil
}

// BestMove returns the top-ranked move for the side to move.
func (e *Engine) BestMove(state game.BoardState) (game.Move, error) {
	result, err := e.AnalyzePosition(state)
	if err != nil {
		return game.NoMove, err
	}
	if result.NumMoves == 0 {
		return game.NoMove, fmt.Errorf("analysis: no legal moves")
	}
	return result.BestMove, nil
}
