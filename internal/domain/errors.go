package domain

import "errors"

var (
	ErrCardNotFound      = errors.New("card not found")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrDeckExists        = errors.New("deck already exists")
	ErrInvalidDeckName   = errors.New("invalid deck name")
	ErrInvalidOutcome    = errors.New("invalid review outcome")
	ErrOutcomeNotOffered = errors.New("review outcome not offered at this level")
	ErrNoRoot            = errors.New("no deck root configured")
	ErrSessionDone       = errors.New("review session is over")
)
