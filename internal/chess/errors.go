package chess

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds        = errors.New("chess: square out of bounds")
	ErrNoPieceAtSource    = errors.New("chess: no piece at source")
	ErrDeadPiece          = errors.New("chess: piece has been captured")
	ErrIllegalDestination = errors.New("chess: illegal destination")
	ErrLeavesKingAttacked = fmt.Errorf("%w: king would be attacked", ErrIllegalDestination)
	ErrWrongTurn          = errors.New("chess: not this side's turn")
	ErrGameOver           = errors.New("chess: game is over")
	ErrInvalidFEN         = errors.New("chess: invalid FEN")

	// ErrMissingKing is only ever used as a panic value. A board without a
	// live king for a side is corrupt.
	ErrMissingKing = errors.New("chess: king not found")
)

// MoveError is returned when a move attempt is rejected. The board is left
// untouched.
type MoveError struct {
	Piece PieceID
	To    Square
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move of piece %d to %s rejected: %v", e.Piece, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
