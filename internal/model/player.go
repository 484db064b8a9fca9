package model

import "github.com/benbeisheim/chessrules-backend/internal/chess"

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color chess.Color `json:"color"`
	// TimeLeft is in tenths of a second.
	TimeLeft int `json:"timeLeft"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) seat(color chess.Color) *ClientPlayer {
	if color == chess.White {
		return &p.White
	}
	return &p.Black
}

// colorOf returns the seat held by playerID.
func (p *Players) colorOf(playerID string) (chess.Color, bool) {
	if playerID == "" {
		return chess.White, false
	}
	switch playerID {
	case p.White.ID:
		return chess.White, true
	case p.Black.ID:
		return chess.Black, true
	}
	return chess.White, false
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  chess.Color `json:"color"`
}
