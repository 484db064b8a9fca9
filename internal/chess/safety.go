package chess

import "fmt"

// Status classifies a position from one side's point of view.
type Status uint8

const (
	Normal Status = iota
	Check
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Normal:
		return "normal"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus accepts "normal", "check", "checkmate" or "stalemate".
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{Normal, Check, Checkmate, Stalemate} {
		if st.String() == s {
			return st, nil
		}
	}
	return Normal, fmt.Errorf("chess: unknown status %q", s)
}

// Terminal reports whether the side has no legal move left.
func (s Status) Terminal() bool {
	return s == Checkmate || s == Stalemate
}

// IsKingAttacked reports whether any live enemy piece has the king of color
// among its destinations. It panics with ErrMissingKing when color has no
// live king.
func (b *Board) IsKingAttacked(color Color) bool {
	kingSq, ok := b.king(color)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrMissingKing, color))
	}
	for i := range b.pieces {
		p := &b.pieces[i]
		if !p.Alive || p.Color == color {
			continue
		}
		ms := b.generate(p)
		if ms.Has(kingSq) {
			return true
		}
	}
	return false
}

// IsMoveSafe plays the move on the board, checks whether the mover's king is
// attacked afterwards and takes the move back. The board is unchanged on
// return. Moves onto a friendly piece are never safe.
func (b *Board) IsMoveSafe(id PieceID, to Square) bool {
	p, err := b.livePiece(id)
	if err != nil || !to.Valid() {
		return false
	}
	if other := b.occupant(to); other != NoPiece && b.pieces[other].Color == p.Color {
		return false
	}
	color := p.Color
	u := b.makeMove(id, to)
	defer b.unmakeMove(u)
	return !b.IsKingAttacked(color)
}

// LegalMoves returns the destinations of a piece that survive the king
// safety filter.
func (b *Board) LegalMoves(id PieceID) (MoveSet, error) {
	p, err := b.livePiece(id)
	if err != nil {
		return MoveSet{}, err
	}
	ms := b.generate(p)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			sq := Square{Row: r, Col: c}
			if ms.Has(sq) && !b.IsMoveSafe(id, sq) {
				ms.clear(sq)
			}
		}
	}
	return ms, nil
}

// HasAnyLegalMove reports whether color can make at least one legal move.
func (b *Board) HasAnyLegalMove(color Color) bool {
	for i := range b.pieces {
		p := &b.pieces[i]
		if !p.Alive || p.Color != color {
			continue
		}
		ms := b.generate(p)
		for r := 0; r < BoardSize; r++ {
			for c := 0; c < BoardSize; c++ {
				sq := Square{Row: r, Col: c}
				if ms.Has(sq) && b.IsMoveSafe(PieceID(i), sq) {
					return true
				}
			}
		}
	}
	return false
}

// Evaluate classifies the position for color.
func (b *Board) Evaluate(color Color) Status {
	attacked := b.IsKingAttacked(color)
	hasMove := b.HasAnyLegalMove(color)
	switch {
	case attacked && !hasMove:
		return Checkmate
	case !attacked && !hasMove:
		return Stalemate
	case attacked:
		return Check
	}
	return Normal
}
