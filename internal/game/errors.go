package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed scorer arguments or targets.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition is returned when a move's precondition does not hold.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrIncompleteGuess is returned by SubmitGuess before the row is full.
	ErrIncompleteGuess = fmt.Errorf("%w: not enough letters", ErrInvalidTransition)
	// ErrNotInWordList is returned when the validator rejects a full guess.
	ErrNotInWordList = errors.New("not in word list")
)
