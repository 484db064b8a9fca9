package chess

// AppliedMove describes a committed move.
type AppliedMove struct {
	Piece    PieceID   `json:"piece"`
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	From     Square    `json:"from"`
	To       Square    `json:"to"`
	Captured PieceID   `json:"captured"`
}

// IsCapture reports whether the move removed an enemy piece.
func (m AppliedMove) IsCapture() bool {
	return m.Captured != NoPiece
}

// undo holds what makeMove changed so unmakeMove can restore it exactly.
type undo struct {
	mover    PieceID
	from     Square
	hasMoved bool
	captured PieceID
}

// makeMove relocates a piece in both the grid and the piece table, taking
// off whatever else stood on the destination.
func (b *Board) makeMove(id PieceID, to Square) undo {
	p := &b.pieces[id]
	u := undo{
		mover:    id,
		from:     p.Square,
		hasMoved: p.HasMoved,
		captured: b.occupant(to),
	}
	if u.captured == id {
		u.captured = NoPiece
	}
	if u.captured != NoPiece {
		b.pieces[u.captured].Alive = false
	}
	b.grid[u.from.Row][u.from.Col] = NoPiece
	b.grid[to.Row][to.Col] = id
	p.Square = to
	return u
}

func (b *Board) unmakeMove(u undo) {
	p := &b.pieces[u.mover]
	to := p.Square
	b.grid[to.Row][to.Col] = u.captured
	if u.captured != NoPiece {
		b.pieces[u.captured].Alive = true
	}
	p.Square = u.from
	p.HasMoved = u.hasMoved
	b.grid[u.from.Row][u.from.Col] = u.mover
}

// ApplyMove commits a move without any legality check. Callers must have
// confirmed the destination with LegalMoves or IsMoveSafe.
func (b *Board) ApplyMove(id PieceID, to Square) AppliedMove {
	u := b.makeMove(id, to)
	p := &b.pieces[id]
	p.HasMoved = true
	return AppliedMove{
		Piece:    id,
		Type:     p.Type,
		Color:    p.Color,
		From:     u.from,
		To:       to,
		Captured: u.captured,
	}
}
