package chess

import (
	"fmt"
	"strings"
)

// Board is the canonical position: a dense piece table plus a grid that maps
// each square to the piece standing on it. Every mutation goes through
// makeMove/unmakeMove so the two views never drift apart.
type Board struct {
	grid   [BoardSize][BoardSize]PieceID
	pieces []Piece
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position. White occupies rows 6
// and 7 and moves toward row 0.
func NewBoard() *Board {
	b := newEmptyBoard()
	for _, side := range []struct {
		color   Color
		backRow int
		pawnRow int
	}{
		{White, 7, 6},
		{Black, 0, 1},
	} {
		for col, t := range backRank {
			b.addPiece(Square{Row: side.backRow, Col: col}, side.color, t)
		}
		for col := 0; col < BoardSize; col++ {
			b.addPiece(Square{Row: side.pawnRow, Col: col}, side.color, Pawn)
		}
	}
	return b
}

func newEmptyBoard() *Board {
	b := &Board{pieces: make([]Piece, 0, 32)}
	for r := range b.grid {
		for c := range b.grid[r] {
			b.grid[r][c] = NoPiece
		}
	}
	return b
}

func (b *Board) addPiece(sq Square, color Color, t PieceType) PieceID {
	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, Piece{Square: sq, Color: color, Type: t, Alive: true})
	b.grid[sq.Row][sq.Col] = id
	return id
}

// Piece returns a copy of the piece record for id, captured or not.
func (b *Board) Piece(id PieceID) (Piece, error) {
	if id < 0 || int(id) >= len(b.pieces) {
		return Piece{}, ErrNoPieceAtSource
	}
	return b.pieces[id], nil
}

// Pieces returns a copy of the whole piece table, indexed by PieceID.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

// PieceAt returns the id of the live piece on sq.
func (b *Board) PieceAt(sq Square) (PieceID, error) {
	if !sq.Valid() {
		return NoPiece, ErrOutOfBounds
	}
	id := b.occupant(sq)
	if id == NoPiece {
		return NoPiece, ErrNoPieceAtSource
	}
	return id, nil
}

func (b *Board) occupant(sq Square) PieceID {
	return b.grid[sq.Row][sq.Col]
}

// livePiece resolves id to a live piece or a rejection.
func (b *Board) livePiece(id PieceID) (*Piece, error) {
	if id < 0 || int(id) >= len(b.pieces) {
		return nil, ErrNoPieceAtSource
	}
	p := &b.pieces[id]
	if !p.Alive {
		return nil, ErrDeadPiece
	}
	return p, nil
}

func (b *Board) king(color Color) (Square, bool) {
	for _, p := range b.pieces {
		if p.Alive && p.Type == King && p.Color == color {
			return p.Square, true
		}
	}
	return Square{}, false
}

// Validate checks that the grid and the piece table describe the same
// position: every live piece sits on exactly one cell that points back to
// it, and every occupied cell points at a live piece on that square.
func (b *Board) Validate() error {
	for r := range b.grid {
		for c, id := range b.grid[r] {
			if id == NoPiece {
				continue
			}
			sq := Square{Row: r, Col: c}
			if id < 0 || int(id) >= len(b.pieces) {
				return fmt.Errorf("cell %s holds unknown piece %d", sq, id)
			}
			p := b.pieces[id]
			if !p.Alive {
				return fmt.Errorf("cell %s holds captured piece %d", sq, id)
			}
			if p.Square != sq {
				return fmt.Errorf("cell %s holds piece %d recorded at %s", sq, id, p.Square)
			}
		}
	}
	for i, p := range b.pieces {
		if !p.Alive {
			continue
		}
		if !p.Square.Valid() {
			return fmt.Errorf("piece %d is off the board at %s", i, p.Square)
		}
		if got := b.occupant(p.Square); got != PieceID(i) {
			return fmt.Errorf("piece %d at %s but cell holds %d", i, p.Square, got)
		}
	}
	return nil
}

// String draws the board with row 0 (rank 8) on top.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		fmt.Fprintf(&sb, "%d", BoardSize-r)
		for c := 0; c < BoardSize; c++ {
			sb.WriteByte(' ')
			if id := b.grid[r][c]; id != NoPiece {
				sb.WriteByte(b.pieces[id].Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
