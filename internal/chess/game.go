package chess

// LastMove is the most recent committed move, kept for highlighting.
type LastMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// State is the turn bookkeeping around a board.
//
// Status classifies the position for the side that has to answer LastMove.
// Turn passes to that side unless it has been checkmated, in which case Turn
// stays with the winner and Over is set. Stalemate passes the turn and ends
// the game as a draw.
type State struct {
	Turn     Color     `json:"turn"`
	LastMove *LastMove `json:"lastMove"`
	Status   Status    `json:"status"`
	Over     bool      `json:"over"`
	Winner   *Color    `json:"winner"`
}

// Game is one rules-engine session. It is not safe for concurrent use; all
// calls for a game must be serialized by the owner.
type Game struct {
	board *Board
	state State
}

// NewGame starts a game from the standard position with white to move.
func NewGame() *Game {
	return &Game{
		board: NewBoard(),
		state: State{Turn: White, Status: Normal},
	}
}

// NewGameFromFEN starts a game from an arbitrary position. The position is
// classified for the side to move straight away.
func NewGameFromFEN(fen string) (*Game, error) {
	b, turn, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{board: b, state: State{Turn: turn}}
	g.state.Status = b.Evaluate(turn)
	if g.state.Status.Terminal() {
		g.state.Over = true
		if g.state.Status == Checkmate {
			winner := turn.Opponent()
			g.state.Winner = &winner
		}
	}
	return g, nil
}

// State returns a copy of the turn bookkeeping.
func (g *Game) State() State {
	s := g.state
	if s.LastMove != nil {
		lm := *s.LastMove
		s.LastMove = &lm
	}
	if s.Winner != nil {
		w := *s.Winner
		s.Winner = &w
	}
	return s
}

func (g *Game) PieceAt(sq Square) (PieceID, error) {
	return g.board.PieceAt(sq)
}

func (g *Game) Piece(id PieceID) (Piece, error) {
	return g.board.Piece(id)
}

func (g *Game) Pieces() []Piece {
	return g.board.Pieces()
}

func (g *Game) FEN() string {
	return g.board.FEN(g.state.Turn)
}

func (g *Game) String() string {
	return g.board.String()
}

// LegalDestinations returns the moves of a piece that do not leave its own
// king attacked. It works for either side regardless of whose turn it is.
func (g *Game) LegalDestinations(id PieceID) (MoveSet, error) {
	return g.board.LegalMoves(id)
}

// StatusAfter classifies the current position for color.
func (g *Game) StatusAfter(color Color) Status {
	return g.board.Evaluate(color)
}

// AttemptMove validates and commits a move for the side to move. A rejected
// move returns a *MoveError and leaves the game untouched.
func (g *Game) AttemptMove(id PieceID, to Square) (AppliedMove, error) {
	reject := func(err error) (AppliedMove, error) {
		return AppliedMove{}, &MoveError{Piece: id, To: to, Err: err}
	}
	if g.state.Over {
		return reject(ErrGameOver)
	}
	if !to.Valid() {
		return reject(ErrOutOfBounds)
	}
	p, err := g.board.livePiece(id)
	if err != nil {
		return reject(err)
	}
	if p.Color != g.state.Turn {
		return reject(ErrWrongTurn)
	}
	ms := g.board.generate(p)
	if !ms.Has(to) {
		return reject(ErrIllegalDestination)
	}
	if !g.board.IsMoveSafe(id, to) {
		return reject(ErrLeavesKingAttacked)
	}

	applied := g.board.ApplyMove(id, to)
	g.state.LastMove = &LastMove{From: applied.From, To: applied.To}

	opponent := applied.Color.Opponent()
	g.state.Status = g.board.Evaluate(opponent)
	switch g.state.Status {
	case Checkmate:
		winner := applied.Color
		g.state.Winner = &winner
		g.state.Over = true
	case Stalemate:
		g.state.Turn = opponent
		g.state.Over = true
	default:
		g.state.Turn = opponent
	}
	return applied, nil
}
