package model

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
}

// Move pairs white's ply with black's reply.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// LegalMoves are the destinations of one piece, split the way the board
// highlights them.
type LegalMoves struct {
	From    Position   `json:"from"`
	Quiet   []Position `json:"quiet"`
	Capture []Position `json:"capture"`
}
