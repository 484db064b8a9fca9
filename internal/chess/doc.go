// Package chess is the rules engine: board state, per-piece move
// generation, king-safety filtering and checkmate/stalemate detection.
//
// Castling, en passant, promotion and the draw rules are not implemented.
package chess
