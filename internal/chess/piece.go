package chess

import "fmt"

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

type Color uint8

const (
	White Color = iota
	Black
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "white" or "black".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("chess: unknown color %q", s)
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Rook
	Knight
	Bishop
	Queen
	King

	numPieceTypes
)

var pieceTypeNames = [numPieceTypes]string{
	Pawn:   "pawn",
	Rook:   "rook",
	Knight: "knight",
	Bishop: "bishop",
	Queen:  "queen",
	King:   "king",
}

func (t PieceType) String() string {
	if t < numPieceTypes {
		return pieceTypeNames[t]
	}
	return fmt.Sprintf("PieceType(%d)", uint8(t))
}

func (t PieceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParsePieceType accepts the lowercase piece names, e.g. "knight".
func ParsePieceType(s string) (PieceType, error) {
	for t, name := range pieceTypeNames {
		if name == s {
			return PieceType(t), nil
		}
	}
	return Pawn, fmt.Errorf("chess: unknown piece type %q", s)
}

// Square addresses a cell by row and column. Row 0 is black's back rank.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether both coordinates are in [0,8).
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// String returns the algebraic name of the square, e.g. (6,4) is "e2".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, BoardSize-s.Row)
}

func (s Square) offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// PieceID is a stable handle into the board's piece table. Captured pieces
// keep their slot.
type PieceID int

// NoPiece marks an empty cell in the lookup grid.
const NoPiece PieceID = -1

type Piece struct {
	Square   Square    `json:"square"`
	Color    Color     `json:"color"`
	Type     PieceType `json:"type"`
	Alive    bool      `json:"alive"`
	HasMoved bool      `json:"hasMoved"`
}

// Symbol returns the FEN letter of the piece, upper case for white.
func (p Piece) Symbol() byte {
	ch := "prnbqk"[p.Type]
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}
