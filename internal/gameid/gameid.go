// Package gameid implements compact state encoding for ultimate tic-tac-toe.
//
// A state is packed into a 167-bit key: 9 bits of cell mask per player per
// sub-board, 4 bits for the forced sub-board and one bit for the side to
// move. The key doubles as the evaluation-cache key and, rendered as a
// 28-character base64 string, as the state ID used on the wire and on the
// command line. Derived fields (sub-board outcomes, the macro board, the
// game result) are recomputed on decode, never transmitted.
package gameid

import (
	"errors"

	"github.com/yourusername/utttengine/pkg/game"
)

// StateIDLength is the length of a state ID string.
const StateIDLength = 28

// Base64 alphabet used for state ID encoding.
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// freeBoardBits encodes "no forced sub-board" in the 4-bit active field.
const freeBoardBits = 0xF

// Key is a compact binary representation of a board state.
type Key struct {
	Data [6]uint32
}

// EqualKeys returns true if two keys are identical.
func EqualKeys(a, b Key) bool {
	return a.Data == b.Data
}

// bitField writes and reads little-endian bit runs over the key words.
type bitField struct {
	data *[6]uint32
	pos  int
}

func (f *bitField) put(v uint32, n int) {
	for n > 0 {
		word, off := f.pos/32, f.pos%32
		take := 32 - off
		if take > n {
			take = n
		}
		f.data[word] |= (v & (1<<take - 1)) << off
		v >>= take
		n -= take
		f.pos += take
	}
}

func (f *bitField) get(n int) uint32 {
	var v uint32
	for shift := 0; n > 0; {
		word, off := f.pos/32, f.pos%32
		take := 32 - off
		if take > n {
			take = n
		}
		v |= (f.data[word] >> off & (1<<take - 1)) << shift
		shift += take
		n -= take
		f.pos += take
	}
	return v
}

// MakeKey packs a board state into a key. The move log and last move are
// not part of the key: two states reached by different move orders but
// describing the same position share a key.
func MakeKey(state game.BoardState) Key {
	var key Key
	f := bitField{data: &key.Data}
	for i := 0; i < 9; i++ {
		f.put(uint32(state.Subs[i].Cells[0]), 9)
		f.put(uint32(state.Subs[i].Cells[1]), 9)
	}
	active := uint32(freeBoardBits)
	if state.Active != game.FreeBoard {
		active = uint32(state.Active)
	}
	f.put(active, 4)
	if state.ToMove == game.Nought {
		f.put(1, 1)
	} else {
		f.put(0, 1)
	}
	return key
}

// StateFromKey reconstructs a board state from a key. Sub-board outcomes,
// the macro board and the game result are recomputed; the move log is
// unknown and left empty.
func StateFromKey(key Key) (game.BoardState, error) {
	f := bitField{data: &key.Data}
	var cells [9][2]uint16
	for i := 0; i < 9; i++ {
		cells[i][0] = uint16(f.get(9))
		cells[i][1] = uint16(f.get(9))
	}
	active := f.get(4)
	toMove := game.Cross
	if f.get(1) == 1 {
		toMove = game.Nought
	}

	forced := game.FreeBoard
	if active != freeBoardBits {
		if active > 8 {
			return game.BoardState{}, errors.New("gameid: forced sub-board out of range")
		}
		forced = int8(active)
	}
	return game.FromCells(cells, toMove, forced)
}

// StateID returns the base64 state ID for a board state.
func StateID(state game.BoardState) string {
	key := MakeKey(state)
	f := bitField{data: &key.Data}
	buf := make([]byte, StateIDLength)
	for i := range buf {
		buf[i] = base64Chars[f.get(6)]
	}
	return string(buf)
}

// StateFromID decodes a state ID string into a board state.
func StateFromID(id string) (game.BoardState, error) {
	if len(id) != StateIDLength {
		return game.BoardState{}, errors.New("gameid: state ID must be 28 characters")
	}
	var key Key
	f := bitField{data: &key.Data}
	for i := 0; i < StateIDLength; i++ {
		v := decodeBase64Char(id[i])
		if v < 0 {
			return game.BoardState{}, errors.New("gameid: invalid character in state ID")
		}
		f.put(uint32(v), 6)
	}
	return StateFromKey(key)
}

func decodeBase64Char(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 26
	case c >= '0' && c <= '9':
		return int(c-'0') + 52
	case c == '+':
		return 62
	case c == '/':
		return 63
	}
	return -1
}
