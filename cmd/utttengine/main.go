// utttengine - an ultimate tic-tac-toe analysis engine
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yourusername/utttengine/internal/gameid"
	"github.com/yourusername/utttengine/pkg/engine"
	"github.com/yourusername/utttengine/pkg/game"
	"github.com/yourusername/utttengine/pkg/match"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "eval":
		cmdEval(args)
	case "move":
		cmdMove(args)
	case "classify":
		cmdClassify(args)
	case "replay":
		cmdReplay(args)
	case "selfplay":
		cmdSelfplay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`utttengine - Ultimate Tic-Tac-Toe Analysis Engine

Usage: utttengine <command> [options]

Commands:
  eval      Evaluate a position
  move      Pick or rank moves for a position
  classify  Rate a played move
  replay    Replay and review a game record file
  selfplay  Play difficulty tiers against each other

Use "utttengine <command> -h" for command-specific help.

State ID Format:
  Positions are passed as 28-character state IDs. The empty game is
  "` + gameid.StateID(game.NewGame()) + `".`)
}

func parseStateArg(id string) game.BoardState {
	state, err := gameid.StateFromID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return state
}

func createEngine() *engine.Engine {
	e, err := engine.NewEngine(engine.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create engine: %v\n", err)
		os.Exit(1)
	}
	return e
}

func cmdEval(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	stateFlag := fs.String("state", "", "State ID")
	stateShort := fs.String("s", "", "State ID (short form)")
	showBoard := fs.Bool("board", false, "Print the board")
	fs.Parse(args)

	id := *stateFlag
	if id == "" {
		id = *stateShort
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, "Error: state required")
		fmt.Fprintln(os.Stderr, "Usage: utttengine eval -state <stateID>")
		os.Exit(1)
	}

	state := parseStateArg(id)
	e := createEngine()

	if *showBoard {
		fmt.Print(game.Render(state))
		fmt.Println()
	}
	fmt.Printf("To move: %s\n", state.ToMove)
	if state.Active == game.FreeBoard {
		fmt.Println("Active:  free choice")
	} else {
		fmt.Printf("Active:  sub-board %d\n", state.Active)
	}
	fmt.Printf("Result:  %s\n", state.Result)
	fmt.Printf("Score:   %+d (for %s)\n", e.Evaluate(state, state.ToMove), state.ToMove)
}

func cmdMove(args []string) {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	stateFlag := fs.String("state", "", "State ID")
	stateShort := fs.String("s", "", "State ID (short form)")
	difficulty := fs.String("difficulty", "heuristic", "Tier: random, tactical, heuristic, deep")
	budget := fs.Duration("budget", time.Second, "Search budget (deep tier)")
	numMoves := fs.Int("n", 5, "Number of ranked moves to show")
	fs.Parse(args)

	id := *stateFlag
	if id == "" {
		id = *stateShort
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, "Error: state required")
		fmt.Fprintln(os.Stderr, "Usage: utttengine move -state <stateID> [-difficulty deep]")
		os.Exit(1)
	}

	tier, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	state := parseStateArg(id)
	e := createEngine()

	if tier == engine.DifficultyDeep {
		cfg := e.SearchConfig()
		cfg.Budget = *budget
		result, err := e.SearchDeepWith(state, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Move:  %s\n", game.FormatMove(result.Move))
		fmt.Printf("Score: %+d  depth %d  %d nodes in %v\n",
			result.Score, result.Depth, result.Nodes, result.Elapsed.Round(time.Millisecond))
		return
	}

	m, err := e.SelectMove(state, tier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Move: %s (%s)\n", game.FormatMove(m), tier)

	analysis, err := e.AnalyzePosition(state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n := *numMoves
	if n > len(analysis.Moves) {
		n = len(analysis.Moves)
	}
	fmt.Printf("\nTop %d of %d legal moves:\n", n, analysis.NumMoves)
	for i := 0; i < n; i++ {
		fmt.Printf("  %d. %-5s %+d\n", i+1,
			game.FormatMove(analysis.Moves[i].Move), analysis.Moves[i].Score)
	}
}

func cmdClassify(args []string) {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	stateFlag := fs.String("state", "", "State ID the move was played in")
	moveFlag := fs.String("move", "", "Played move (sub/cell)")
	fs.Parse(args)

	if *stateFlag == "" || *moveFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: state and move required")
		fmt.Fprintln(os.Stderr, "Usage: utttengine classify -state <stateID> -move 4/7")
		os.Exit(1)
	}

	m, err := game.ParseMove(*moveFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	state := parseStateArg(*stateFlag)
	e := createEngine()

	analysis, err := e.Classify(state, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s %s\n", game.FormatMove(analysis.Move), annotate(analysis.Label))
	fmt.Printf("  Score: %+d\n", analysis.Score)
	if analysis.BestMove != nil {
		fmt.Printf("  Best:  %s (%+d), loss %d\n",
			game.FormatMove(*analysis.BestMove), analysis.BestScore, analysis.Loss)
	}
}

func annotate(l engine.MoveLabel) string {
	if abbr := l.Abbr(); abbr != "" {
		return fmt.Sprintf("%s (%s)", abbr, l)
	}
	return l.String()
}

func cmdReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	fileFlag := fs.String("file", "", "Game record file")
	review := fs.Bool("review", false, "Classify every move")
	fs.Parse(args)

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: file required")
		fmt.Fprintln(os.Stderr, "Usage: utttengine replay -file game.txt [-review]")
		os.Exit(1)
	}

	f, err := os.Open(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	record, err := match.Import(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	final, err := record.FinalState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(game.Render(final))
	fmt.Printf("\n%d moves, result: %s\n", len(record.Log), final.Result)
	fmt.Printf("State ID: %s\n", gameid.StateID(final))

	if !*review {
		return
	}

	e := createEngine()
	rev, err := e.ReviewGame(record.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	for i, ma := range rev.Moves {
		fmt.Printf("%3d. %s %-5s %s\n", i+1, record.Log[i].Mark,
			game.FormatMove(ma.Move), annotate(ma.Label))
	}
	fmt.Println()
	for _, p := range rev.Players {
		fmt.Printf("%s: %d moves, total loss %d, avg %.0f (%s)\n",
			p.Mark, p.Moves, p.TotalLoss, p.AvgLoss, p.Rating)
	}
}

func cmdSelfplay(args []string) {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	tierA := fs.String("a", "heuristic", "Difficulty of player A")
	tierB := fs.String("b", "random", "Difficulty of player B")
	trials := fs.Int("trials", 100, "Number of games")
	workers := fs.Int("workers", 4, "Parallel games")
	seed := fs.Int64("seed", 1, "Random seed")
	fs.Parse(args)

	a, err := engine.ParseDifficulty(*tierA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b, err := engine.ParseDifficulty(*tierB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	e := createEngine()
	start := time.Now()
	result, err := e.SelfPlay(engine.SelfPlayOptions{
		Trials:      *trials,
		Workers:     *workers,
		Seed:        *seed,
		DifficultyA: a,
		DifficultyB: b,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s vs %s: %d games in %v\n", a, b, result.Trials, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  A wins: %d  B wins: %d  draws: %d\n", result.WinsA, result.WinsB, result.Draws)
	fmt.Printf("  A score: %.3f ± %.3f (95%% CI)\n", result.Mean, result.CI95)
}
