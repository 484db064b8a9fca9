package chess

// MoveSet holds the destinations of one piece. Quiet and Capture are
// mutually exclusive per square.
type MoveSet struct {
	Quiet   [BoardSize][BoardSize]bool
	Capture [BoardSize][BoardSize]bool
}

// Has reports whether sq is a quiet or capture destination.
func (ms *MoveSet) Has(sq Square) bool {
	return sq.Valid() && (ms.Quiet[sq.Row][sq.Col] || ms.Capture[sq.Row][sq.Col])
}

// IsCapture reports whether sq is a capture destination.
func (ms *MoveSet) IsCapture(sq Square) bool {
	return sq.Valid() && ms.Capture[sq.Row][sq.Col]
}

// QuietSquares lists quiet destinations in row-major order.
func (ms *MoveSet) QuietSquares() []Square {
	return collect(&ms.Quiet)
}

// CaptureSquares lists capture destinations in row-major order.
func (ms *MoveSet) CaptureSquares() []Square {
	return collect(&ms.Capture)
}

// Len returns the number of destinations.
func (ms *MoveSet) Len() int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if ms.Quiet[r][c] || ms.Capture[r][c] {
				n++
			}
		}
	}
	return n
}

func (ms *MoveSet) clear(sq Square) {
	ms.Quiet[sq.Row][sq.Col] = false
	ms.Capture[sq.Row][sq.Col] = false
}

func collect(grid *[BoardSize][BoardSize]bool) []Square {
	var out []Square
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if grid[r][c] {
				out = append(out, Square{Row: r, Col: c})
			}
		}
	}
	return out
}

type offset struct{ dr, dc int }

var (
	straightDirs  = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs  = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	kingOffsets   = []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	knightOffsets = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

type moveRule func(b *Board, p *Piece, ms *MoveSet)

var moveRules = [numPieceTypes]moveRule{
	Pawn:   pawnMoves,
	Rook:   rookMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

// GenerateMoves returns the pseudo-legal destinations of a live piece. The
// board is not modified.
func (b *Board) GenerateMoves(id PieceID) (MoveSet, error) {
	p, err := b.livePiece(id)
	if err != nil {
		return MoveSet{}, err
	}
	return b.generate(p), nil
}

func (b *Board) generate(p *Piece) MoveSet {
	var ms MoveSet
	moveRules[p.Type](b, p, &ms)
	return ms
}

// mark records sq as a destination for p and reports whether a ray may
// continue past it.
func (b *Board) mark(p *Piece, sq Square, ms *MoveSet) bool {
	if !sq.Valid() {
		return false
	}
	if id := b.occupant(sq); id != NoPiece {
		if b.pieces[id].Color != p.Color {
			ms.Capture[sq.Row][sq.Col] = true
		}
		return false
	}
	ms.Quiet[sq.Row][sq.Col] = true
	return true
}

func (b *Board) slide(p *Piece, dirs []offset, ms *MoveSet) {
	for _, d := range dirs {
		sq := p.Square.offset(d.dr, d.dc)
		for b.mark(p, sq, ms) {
			sq = sq.offset(d.dr, d.dc)
		}
	}
}

func (b *Board) step(p *Piece, offsets []offset, ms *MoveSet) {
	for _, o := range offsets {
		b.mark(p, p.Square.offset(o.dr, o.dc), ms)
	}
}

// pawnForward returns the row direction of travel and the starting row.
func pawnForward(c Color) (dir, startRow int) {
	if c == White {
		return -1, BoardSize - 2
	}
	return 1, 1
}

func pawnMoves(b *Board, p *Piece, ms *MoveSet) {
	dir, startRow := pawnForward(p.Color)

	one := p.Square.offset(dir, 0)
	if one.Valid() && b.occupant(one) == NoPiece {
		ms.Quiet[one.Row][one.Col] = true
		two := p.Square.offset(2*dir, 0)
		if p.Square.Row == startRow && two.Valid() && b.occupant(two) == NoPiece {
			ms.Quiet[two.Row][two.Col] = true
		}
	}

	// diagonals are only ever captures
	for _, dc := range [...]int{-1, 1} {
		sq := p.Square.offset(dir, dc)
		if !sq.Valid() {
			continue
		}
		if id := b.occupant(sq); id != NoPiece && b.pieces[id].Color != p.Color {
			ms.Capture[sq.Row][sq.Col] = true
		}
	}
}

func rookMoves(b *Board, p *Piece, ms *MoveSet) {
	b.slide(p, straightDirs, ms)
}

func bishopMoves(b *Board, p *Piece, ms *MoveSet) {
	b.slide(p, diagonalDirs, ms)
}

func queenMoves(b *Board, p *Piece, ms *MoveSet) {
	b.slide(p, straightDirs, ms)
	b.slide(p, diagonalDirs, ms)
}

func knightMoves(b *Board, p *Piece, ms *MoveSet) {
	b.step(p, knightOffsets, ms)
}

func kingMoves(b *Board, p *Piece, ms *MoveSet) {
	b.step(p, kingOffsets, ms)
}
