package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/yourusername/utttengine/internal/gameid"
	"github.com/yourusername/utttengine/pkg/game"
)

// SearchResult describes the outcome of a Deep-tier search.
type SearchResult struct {
	Move    game.Move
	Score   int           // score of Move from the mover's perspective
	Depth   int           // deepest fully completed iteration
	Nodes   uint64        // nodes visited, aborted iterations included
	Elapsed time.Duration // wall time actually spent
}

// SelectMove picks a move for the side to move at the given difficulty.
func (e *Engine) SelectMove(state game.BoardState, difficulty Difficulty) (game.Move, error) {
	return e.selectMove(state, difficulty, e.randIntn)
}

// selectMove is the rng-parameterized core, shared with self-play workers
// that carry their own random sources.
func (e *Engine) selectMove(state game.BoardState, difficulty Difficulty, randIntn func(int) int) (game.Move, error) {
	if state.Result != game.OutcomeNone {
		return game.NoMove, fmt.Errorf("select: game is over (%s)", state.Result)
	}
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return game.NoMove, fmt.Errorf("select: no legal moves")
	}
	if len(moves) == 1 {
		return moves[0], nil
	}

	switch difficulty {
	case DifficultyRandom:
		return moves[randIntn(len(moves))], nil
	case DifficultyTactical:
		return e.selectTactical(state, moves, randIntn), nil
	case DifficultyHeuristic:
		return e.BestMove(state)
	case DifficultyDeep:
		result, err := e.SearchDeep(state)
		if err != nil {
			return game.NoMove, err
		}
		return result.Move, nil
	}
	return game.NoMove, fmt.Errorf("select: unknown difficulty %d", difficulty)
}

// selectTactical plays a win-now move if one exists, otherwise blocks an
// opponent win-now threat, otherwise picks at random among moves that do
// not point the opponent at a sub-board it can win at once.
func (e *Engine) selectTactical(state game.BoardState, moves []game.Move, randIntn func(int) int) game.Move {
	mover := state.ToMove
	opp := mover.Other()

	for _, m := range moves {
		if winningCells(state.Subs[m.Sub], mover)&(1<<m.Cell) != 0 {
			return m
		}
	}
	for _, m := range moves {
		if winningCells(state.Subs[m.Sub], opp)&(1<<m.Cell) != 0 {
			return m
		}
	}

	safe := moves[:0:0]
	for _, m := range moves {
		if !e.sendsToWinnable(state, m) {
			safe = append(safe, m)
		}
	}
	if len(safe) == 0 {
		safe = moves
	}
	return safe[randIntn(len(safe))]
}

// sendsToWinnable reports whether the move forces the opponent into a
// sub-board where it can complete a line immediately.
func (e *Engine) sendsToWinnable(state game.BoardState, m game.Move) bool {
	next := game.Simulate(state, m)
	if next.Active == game.FreeBoard {
		return false
	}
	return winningCells(next.Subs[next.Active], next.ToMove) != 0
}

// SearchDeep runs a time-boxed iterative-deepening alpha-beta search with
// the engine's configured settings.
func (e *Engine) SearchDeep(state game.BoardState) (*SearchResult, error) {
	return e.SearchDeepWith(state, e.search)
}

// SearchDeepWith runs the Deep search under an explicit configuration.
// Even with a zero budget a legal move is always returned: root moves are
// ordered before the deadline gate applies.
func (e *Engine) SearchDeepWith(state game.BoardState, cfg SearchConfig) (*SearchResult, error) {
	if state.Result != game.OutcomeNone {
		return nil, fmt.Errorf("search: game is over (%s)", state.Result)
	}
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return nil, fmt.Errorf("search: no legal moves")
	}

	var model *OpponentModel
	if cfg.UseOpponentModel {
		model = ModelFromLog(state.Log, state.ToMove.Other())
	}

	sc := &searchContext{
		engine:   e,
		deadline: time.Now().Add(cfg.Budget),
		model:    model,
	}

	start := time.Now()
	order := e.presortMoves(state, moves, model)
	result := &SearchResult{Move: order[0]}

	for depth := cfg.StartDepth; depth <= cfg.MaxDepth; depth++ {
		move, score, complete := sc.searchRoot(state, order, depth)
		if !complete {
			break
		}
		result.Move = move
		result.Score = score
		result.Depth = depth

		// Promote the iteration's best move to the front for the next pass.
		for i, m := range order {
			if m == move {
				copy(order[1:i+1], order[:i])
				order[0] = m
				break
			}
		}

		if score >= e.weights.Win {
			break
		}
	}

	result.Nodes = sc.nodes
	result.Elapsed = time.Since(start)
	return result, nil
}

// searchContext carries per-search state so one Engine can serve
// concurrent searches.
type searchContext struct {
	engine   *Engine
	deadline time.Time
	model    *OpponentModel
	nodes    uint64
}

// searchRoot runs one alpha-beta iteration at a fixed depth. complete is
// false when the deadline expired before every root move was examined, in
// which case the partial result must be discarded.
func (sc *searchContext) searchRoot(state game.BoardState, order []game.Move, depth int) (best game.Move, bestScore int, complete bool) {
	e := sc.engine
	alpha, beta := -e.weights.Win-int(maxSearchDepth), e.weights.Win+int(maxSearchDepth)

	best = order[0]
	bestScore = alpha
	for _, m := range order {
		next := game.Simulate(state, m)
		score, ok := sc.negamax(next, depth-1, -beta, -alpha)
		if !ok {
			return best, bestScore, false
		}
		score = -score
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, bestScore, true
}

// maxSearchDepth bounds depth-adjusted terminal scores.
const maxSearchDepth = 81

// negamax returns the score of state from the side to move's perspective.
// ok is false when the wall-clock deadline expired; callers discard the
// score and unwind. Terminal wins carry a depth bonus so the search
// prefers faster wins and slower losses.
func (sc *searchContext) negamax(state game.BoardState, depth, alpha, beta int) (int, bool) {
	sc.nodes++
	if sc.nodes&0x3FF == 0 && time.Now().After(sc.deadline) {
		return 0, false
	}

	e := sc.engine
	if state.Result != game.OutcomeNone {
		if state.Result == game.OutcomeDraw {
			return 0, true
		}
		// The side to move at a decided state is always the loser.
		return -(e.weights.Win + depth), true
	}
	if depth <= 0 {
		return sc.cachedEvaluate(state), true
	}

	moves := game.LegalMoves(state)
	best := -e.weights.Win - maxSearchDepth
	for _, m := range moves {
		next := game.Simulate(state, m)
		score, ok := sc.negamax(next, depth-1, -beta, -alpha)
		if !ok {
			return 0, false
		}
		score = -score
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, true
}

// cachedEvaluate evaluates a leaf through the evaluation cache.
func (sc *searchContext) cachedEvaluate(state game.BoardState) int {
	e := sc.engine
	if e.cache == nil {
		return e.evaluate(state, state.ToMove, sc.model)
	}

	key := gameid.MakeKey(state)
	ctx := MakeEvalContext(playerBit(state.ToMove), sc.model.Fingerprint())
	if score, slot := e.cache.Lookup(key, ctx); slot == CacheHit {
		return int(score)
	} else {
		v := e.evaluate(state, state.ToMove, sc.model)
		e.cache.Add(key, ctx, int32(v), slot)
		return v
	}
}

// playerBit maps a mark to the cache-context perspective bit.
func playerBit(m game.Mark) int {
	if m == game.Nought {
		return 1
	}
	return 0
}

// presortMoves orders root moves by one-ply evaluation, best first, with
// enumeration order breaking ties.
func (e *Engine) presortMoves(state game.BoardState, moves []game.Move, model *OpponentModel) []game.Move {
	type scored struct {
		move  game.Move
		score int
	}
	list := make([]scored, len(moves))
	for i, m := range moves {
		next := game.Simulate(state, m)
		list[i] = scored{move: m, score: e.evaluate(next, state.ToMove, model)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	order := make([]game.Move, len(moves))
	for i, s := range list {
		order[i] = s.move
	}
	return order
}

// newWorkerRand returns a private random source for a self-play worker.
func newWorkerRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
