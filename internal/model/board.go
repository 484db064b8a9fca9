package model

import "github.com/benbeisheim/chessrules-backend/internal/chess"

// Position is a square as the frontend addresses it: X is the file (0 = a),
// Y is the row from the top (0 = rank 8).
type Position struct {
	X int `json:"x" query:"x"`
	Y int `json:"y" query:"y"`
}

func (p Position) square() chess.Square {
	return chess.Square{Row: p.Y, Col: p.X}
}

func positionOf(sq chess.Square) Position {
	return Position{X: sq.Col, Y: sq.Row}
}

func positionsOf(squares []chess.Square) []Position {
	out := make([]Position, 0, len(squares))
	for _, sq := range squares {
		out = append(out, positionOf(sq))
	}
	return out
}

type Piece struct {
	ID       chess.PieceID   `json:"id"`
	Type     chess.PieceType `json:"type"`
	Color    chess.Color     `json:"color"`
	Position Position        `json:"position"`
	HasMoved bool            `json:"hasMoved"`
}

func pieceView(id chess.PieceID, p chess.Piece) Piece {
	return Piece{
		ID:       id,
		Type:     p.Type,
		Color:    p.Color,
		Position: positionOf(p.Square),
		HasMoved: p.HasMoved,
	}
}

type BoardState struct {
	Board [][]*Piece `json:"board"`
	FEN   string     `json:"fen"`
}

func newBoardState(g *chess.Game) *BoardState {
	board := &BoardState{FEN: g.FEN()}
	for i := 0; i < chess.BoardSize; i++ {
		board.Board = append(board.Board, make([]*Piece, chess.BoardSize))
	}
	for i, p := range g.Pieces() {
		if !p.Alive {
			continue
		}
		view := pieceView(chess.PieceID(i), p)
		board.Board[p.Square.Row][p.Square.Col] = &view
	}
	return board
}
