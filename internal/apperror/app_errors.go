package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsOngoing    = errors.New("game is still ongoing")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameIsFull       = errors.New("all seats are taken")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNotAPlayer       = errors.New("player is not seated in this game")
	ErrAlreadyInGame    = errors.New("player is already in a game")
	ErrNotFound         = errors.New("not found")
)
