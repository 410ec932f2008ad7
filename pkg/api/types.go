package api

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports server status for GET /api/health.
type HealthResponse struct {
	Status  string     `json:"status"`
	Version string     `json:"version"`
	Ready   bool       `json:"ready"`
	Pool    *PoolStats `json:"pool,omitempty"`
}

// EvaluateRequest asks for a static evaluation of a state ID.
type EvaluateRequest struct {
	State       string `json:"state"`
	Perspective string `json:"perspective,omitempty"` // "X" or "O", default side to move
}

// EvaluateResponse carries the evaluation.
type EvaluateResponse struct {
	State       string `json:"state"`
	Perspective string `json:"perspective"`
	Score       int    `json:"score"`
	Result      string `json:"result"`
	ToMove      string `json:"to_move"`
}

// LegalRequest asks for the legal moves of a state.
type LegalRequest struct {
	State string `json:"state"`
}

// LegalResponse lists legal moves in sub/cell notation.
type LegalResponse struct {
	Moves    []string `json:"moves"`
	NumLegal int      `json:"num_legal"`
	Active   int      `json:"active"` // forced sub-board, -1 for free
}

// ApplyRequest plays one move on a state.
type ApplyRequest struct {
	State string `json:"state"`
	Move  string `json:"move"`
}

// StateResponse describes a position after a state-changing operation.
type StateResponse struct {
	State  string `json:"state"`
	ToMove string `json:"to_move"`
	Active int    `json:"active"`
	Result string `json:"result"`
	Board  string `json:"board,omitempty"` // ASCII rendering
}

// MoveRequest asks the engine to pick or rank moves.
type MoveRequest struct {
	State      string `json:"state"`
	Difficulty string `json:"difficulty,omitempty"` // default "heuristic"
	BudgetMs   int    `json:"budget_ms,omitempty"`  // deep tier only
	NumMoves   int    `json:"num_moves,omitempty"`  // cap on ranked moves returned
}

// RankedMove is one ranked alternative.
type RankedMove struct {
	Move  string `json:"move"`
	Score int    `json:"score"`
}

// MovesResponse carries the engine's choice and the ranking behind it.
type MovesResponse struct {
	Move       string       `json:"move"`
	Difficulty string       `json:"difficulty"`
	Moves      []RankedMove `json:"moves,omitempty"`
	NumLegal   int          `json:"num_legal"`
	Depth      int          `json:"depth,omitempty"` // deep tier only
	Nodes      uint64       `json:"nodes,omitempty"`
	ElapsedMs  int64        `json:"elapsed_ms,omitempty"`
}

// ClassifyRequest asks for a quality rating of a played move.
type ClassifyRequest struct {
	State string `json:"state"`
	Move  string `json:"move"`
}

// ClassifyResponse is the rating.
type ClassifyResponse struct {
	Move      string `json:"move"`
	Label     string `json:"label"`
	Abbr      string `json:"abbr,omitempty"`
	Score     int    `json:"score"`
	BestMove  string `json:"best_move,omitempty"`
	BestScore int    `json:"best_score"`
	Loss      int    `json:"loss"`
}

// AnalyzeGameRequest submits a full game record for review.
type AnalyzeGameRequest struct {
	Record string `json:"record"` // text game record
}

// PlayerReviewResponse summarizes one player's game.
type PlayerReviewResponse struct {
	Player    string         `json:"player"`
	Moves     int            `json:"moves"`
	Labels    map[string]int `json:"labels"`
	TotalLoss int            `json:"total_loss"`
	AvgLoss   float64        `json:"avg_loss"`
	Rating    string         `json:"rating"`
}

// AnalyzeGameResponse is the whole-game review.
type AnalyzeGameResponse struct {
	Moves   []ClassifyResponse     `json:"moves"`
	Players []PlayerReviewResponse `json:"players"`
	Result  string                 `json:"result"`
}
