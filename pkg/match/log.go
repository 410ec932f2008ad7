// Package match implements a plain-text game record format:
//
//	# Event: club night
//	# Date: 2026-08-25
//	# PlayerX: alice
//	# PlayerO: bob
//
//	1. X 4/4
//	2. O 4/0
//	3. X 0/4
//
// Header lines are optional key-value comments; move lines carry the move
// number, the mark and the move in sub/cell notation. A record imports only
// if its moves replay as a legal game from the empty board.
package match

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/utttengine/pkg/game"
)

// Game is one recorded game with its metadata.
type Game struct {
	Event   string
	Date    string
	PlayerX string
	PlayerO string
	Log     []game.MoveRecord
}

var (
	headerRE = regexp.MustCompile(`^#\s*(\w+)\s*:\s*(.+?)\s*$`)
	moveRE   = regexp.MustCompile(`^(\d+)\.\s+([XO])\s+(\d/\d)\s*$`)
)

// Import reads a game record and replays it to verify legality.
func Import(r io.Reader) (*Game, error) {
	g := &Game{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := headerRE.FindStringSubmatch(line); m != nil {
			switch strings.ToLower(m[1]) {
			case "event":
				g.Event = m[2]
			case "date":
				g.Date = m[2]
			case "playerx":
				g.PlayerX = m[2]
			case "playero":
				g.PlayerO = m[2]
			}
			continue
		}

		m := moveRE.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("match: line %d: unrecognized line %q", lineNo, line)
		}
		num, _ := strconv.Atoi(m[1])
		if num != len(g.Log)+1 {
			return nil, fmt.Errorf("match: line %d: move number %d, expected %d", lineNo, num, len(g.Log)+1)
		}
		mark := game.Cross
		if m[2] == "O" {
			mark = game.Nought
		}
		mv, err := game.ParseMove(m[3])
		if err != nil {
			return nil, fmt.Errorf("match: line %d: %w", lineNo, err)
		}
		g.Log = append(g.Log, game.MoveRecord{Sub: mv.Sub, Cell: mv.Cell, Mark: mark})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("match: reading record: %w", err)
	}

	if _, err := game.Replay(g.Log); err != nil {
		return nil, fmt.Errorf("match: record does not replay: %w", err)
	}
	return g, nil
}

// Export writes the game record.
func (g *Game) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)

	writeHeader := func(key, value string) {
		if value != "" {
			fmt.Fprintf(bw, "# %s: %s\n", key, value)
		}
	}
	writeHeader("Event", g.Event)
	writeHeader("Date", g.Date)
	writeHeader("PlayerX", g.PlayerX)
	writeHeader("PlayerO", g.PlayerO)
	if g.Event != "" || g.Date != "" || g.PlayerX != "" || g.PlayerO != "" {
		fmt.Fprintln(bw)
	}

	for i, rec := range g.Log {
		fmt.Fprintf(bw, "%d. %s %s\n", i+1, rec.Mark, game.FormatMove(game.Move{Sub: rec.Sub, Cell: rec.Cell}))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("match: writing record: %w", err)
	}
	return nil
}

// FinalState replays the record to its last position.
func (g *Game) FinalState() (game.BoardState, error) {
	return game.Replay(g.Log)
}
