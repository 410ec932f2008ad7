package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/utttengine/internal/gameid"
	"github.com/yourusername/utttengine/pkg/engine"
	"github.com/yourusername/utttengine/pkg/game"
	"github.com/yourusername/utttengine/pkg/match"
)

// Handlers holds the HTTP handlers and engine reference.
type Handlers struct {
	engine   *engine.Engine
	version  string
	pool     *WorkerPool
	sessions *sessionRegistry
}

// NewHandlers creates a Handlers instance without a worker pool.
func NewHandlers(e *engine.Engine, version string) *Handlers {
	return &Handlers{engine: e, version: version, sessions: newSessionRegistry()}
}

// NewHandlersWithPool creates a Handlers instance with a worker pool.
func NewHandlersWithPool(e *engine.Engine, version string, pool *WorkerPool) *Handlers {
	return &Handlers{engine: e, version: version, pool: pool, sessions: newSessionRegistry()}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// acquireFast reserves a fast pool slot. Returns false after writing the
// busy response.
func (h *Handlers) acquireFast(w http.ResponseWriter, r *http.Request) (release func(), ok bool) {
	if h.pool == nil {
		return func() {}, true
	}
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return nil, false
	}
	return h.pool.ReleaseFast, true
}

// acquireSlow reserves a slow pool slot.
func (h *Handlers) acquireSlow(w http.ResponseWriter, r *http.Request) (release func(), ok bool) {
	if h.pool == nil {
		return func() {}, true
	}
	if err := h.pool.AcquireSlow(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return nil, false
	}
	return h.pool.ReleaseSlow, true
}

// parseState decodes a state ID from a request.
func parseState(id string) (game.BoardState, error) {
	return gameid.StateFromID(strings.TrimSpace(id))
}

func stateResponse(state game.BoardState, withBoard bool) StateResponse {
	resp := StateResponse{
		State:  gameid.StateID(state),
		ToMove: state.ToMove.String(),
		Active: int(state.Active),
		Result: state.Result.String(),
	}
	if withBoard {
		resp.Board = game.Render(state)
	}
	return resp
}

// Health handles GET /api/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Ready:   h.engine != nil,
	}
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}

// NewGame handles GET /api/new: the initial position's state ID.
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateResponse(game.NewGame(), true))
}

// Evaluate handles POST /api/evaluate.
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.State == "" {
		writeError(w, http.StatusBadRequest, "state is required", "MISSING_STATE")
		return
	}

	state, err := parseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_STATE")
		return
	}

	perspective := state.ToMove
	switch strings.ToUpper(strings.TrimSpace(req.Perspective)) {
	case "":
	case "X":
		perspective = game.Cross
	case "O":
		perspective = game.Nought
	default:
		writeError(w, http.StatusBadRequest, "perspective must be X or O", "INVALID_PERSPECTIVE")
		return
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{
		State:       req.State,
		Perspective: perspective.String(),
		Score:       h.engine.Evaluate(state, perspective),
		Result:      state.Result.String(),
		ToMove:      state.ToMove.String(),
	})
}

// Legal handles POST /api/legal.
func (h *Handlers) Legal(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	var req LegalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	state, err := parseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_STATE")
		return
	}

	moves := game.LegalMoves(state)
	resp := LegalResponse{
		Moves:    make([]string, len(moves)),
		NumLegal: len(moves),
		Active:   int(state.Active),
	}
	for i, m := range moves {
		resp.Moves[i] = game.FormatMove(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Apply handles POST /api/apply.
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	state, err := parseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_STATE")
		return
	}
	m, err := game.ParseMove(req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_MOVE")
		return
	}
	if !game.IsLegal(state, m) {
		writeError(w, http.StatusUnprocessableEntity, "move is not legal in this position", "ILLEGAL_MOVE")
		return
	}

	writeJSON(w, http.StatusOK, stateResponse(game.Apply(state, m), true))
}

// Move handles POST /api/move: engine move selection with optional ranking.
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	difficulty := engine.DifficultyHeuristic
	if req.Difficulty != "" {
		var err error
		if difficulty, err = engine.ParseDifficulty(req.Difficulty); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "INVALID_DIFFICULTY")
			return
		}
	}

	// Deep searches hold a slot for up to their full budget.
	var release func()
	var ok bool
	if difficulty == engine.DifficultyDeep {
		release, ok = h.acquireSlow(w, r)
	} else {
		release, ok = h.acquireFast(w, r)
	}
	if !ok {
		return
	}
	defer release()

	state, err := parseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_STATE")
		return
	}
	if state.Result != game.OutcomeNone {
		writeError(w, http.StatusUnprocessableEntity, "game is over", "GAME_OVER")
		return
	}

	resp := MovesResponse{Difficulty: difficulty.String()}

	if difficulty == engine.DifficultyDeep {
		cfg := h.engine.SearchConfig()
		if req.BudgetMs > 0 {
			cfg.Budget = time.Duration(req.BudgetMs) * time.Millisecond
		}
		result, err := h.engine.SearchDeepWith(state, cfg)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error(), "SEARCH_ERROR")
			return
		}
		resp.Move = game.FormatMove(result.Move)
		resp.NumLegal = len(game.LegalMoves(state))
		resp.Depth = result.Depth
		resp.Nodes = result.Nodes
		resp.ElapsedMs = result.Elapsed.Milliseconds()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	m, err := h.engine.SelectMove(state, difficulty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "SELECT_ERROR")
		return
	}
	resp.Move = game.FormatMove(m)

	analysis, err := h.engine.AnalyzePosition(state)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "ANALYSIS_ERROR")
		return
	}
	resp.NumLegal = analysis.NumMoves

	n := req.NumMoves
	if n <= 0 || n > len(analysis.Moves) {
		n = len(analysis.Moves)
	}
	resp.Moves = make([]RankedMove, n)
	for i := 0; i < n; i++ {
		resp.Moves[i] = RankedMove{
			Move:  game.FormatMove(analysis.Moves[i].Move),
			Score: analysis.Moves[i].Score,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Classify handles POST /api/classify.
func (h *Handlers) Classify(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	state, err := parseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_STATE")
		return
	}
	m, err := game.ParseMove(req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_MOVE")
		return
	}

	analysis, err := h.engine.Classify(state, m)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "ILLEGAL_MOVE")
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse(analysis))
}

func classifyResponse(a *engine.MoveAnalysis) ClassifyResponse {
	resp := ClassifyResponse{
		Move:      game.FormatMove(a.Move),
		Label:     a.Label.String(),
		Abbr:      a.Label.Abbr(),
		Score:     a.Score,
		BestScore: a.BestScore,
		Loss:      a.Loss,
	}
	if a.BestMove != nil {
		resp.BestMove = game.FormatMove(*a.BestMove)
	}
	return resp
}

// AnalyzeGame handles POST /api/analyze/game: a whole-game review.
func (h *Handlers) AnalyzeGame(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireSlow(w, r)
	if !ok {
		return
	}
	defer release()

	var req AnalyzeGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	record, err := match.Import(strings.NewReader(req.Record))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_RECORD")
		return
	}

	review, err := h.engine.ReviewGame(record.Log)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "REVIEW_ERROR")
		return
	}

	resp := AnalyzeGameResponse{
		Moves:   make([]ClassifyResponse, len(review.Moves)),
		Players: make([]PlayerReviewResponse, len(review.Players)),
		Result:  review.Result.String(),
	}
	for i := range review.Moves {
		resp.Moves[i] = classifyResponse(&review.Moves[i])
	}
	for i, p := range review.Players {
		labels := make(map[string]int, len(p.LabelCount))
		for label, n := range p.LabelCount {
			labels[label.String()] = n
		}
		resp.Players[i] = PlayerReviewResponse{
			Player:    p.Mark.String(),
			Moves:     p.Moves,
			Labels:    labels,
			TotalLoss: p.TotalLoss,
			AvgLoss:   p.AvgLoss,
			Rating:    p.Rating.String(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
