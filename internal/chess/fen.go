package chess

import (
	"fmt"
	"strings"
)

// StartFEN is the starting position. Castling and en-passant fields are
// carried for compatibility with other tools but have no effect here.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func pieceFromChar(ch rune) (Color, PieceType, bool) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return color, Pawn, true
	case 'R':
		return color, Rook, true
	case 'N':
		return color, Knight, true
	case 'B':
		return color, Bishop, true
	case 'Q':
		return color, Queen, true
	case 'K':
		return color, King, true
	}
	return White, Pawn, false
}

// ParseFEN builds a board from the piece placement and side-to-move fields
// of a FEN string. Remaining fields are ignored. Each side must have exactly
// one king, and the side not to move must not be in check.
func ParseFEN(fen string) (*Board, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, White, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != BoardSize {
		return nil, White, fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, BoardSize, len(ranks))
	}

	b := newEmptyBoard()
	kings := [2]int{}
	for row, rank := range ranks {
		col := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			color, t, ok := pieceFromChar(ch)
			if !ok {
				return nil, White, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			if col >= BoardSize {
				return nil, White, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, BoardSize-row)
			}
			id := b.addPiece(Square{Row: row, Col: col}, color, t)
			if t == Pawn {
				_, startRow := pawnForward(color)
				b.pieces[id].HasMoved = row != startRow
			}
			if t == King {
				kings[color]++
			}
			col++
		}
		if col != BoardSize {
			return nil, White, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, BoardSize-row, col)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, White, fmt.Errorf("%w: need one king per side", ErrInvalidFEN)
	}

	turn := White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			turn = Black
		default:
			return nil, White, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
		}
	}
	if b.IsKingAttacked(turn.Opponent()) {
		return nil, White, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidFEN, turn.Opponent())
	}
	return b, turn, nil
}

// FEN encodes the board with turn as the side to move.
func (b *Board) FEN(turn Color) string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		empty := 0
		for c := 0; c < BoardSize; c++ {
			id := b.grid[r][c]
			if id == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(b.pieces[id].Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < BoardSize-1 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if turn == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s - - 0 1", side)
	return sb.String()
}
