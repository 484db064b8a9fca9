package model

import "errors"

var (
	ErrGameFull            = errors.New("game is full")
	ErrPlayerNotInGame     = errors.New("player not in game")
	ErrNotYourPiece        = errors.New("piece belongs to the other side")
	ErrAlreadyQueued       = errors.New("player already in queue")
	ErrNotAuthorized       = errors.New("not authorized to join this game")
	ErrDuplicateConnection = errors.New("connection already exists")
)
