package taker

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("taker: aborted")
	// ErrInvalidAnswers is returned when the collected document still fails
	// validation; the issues are wrapped alongside it.
	ErrInvalidAnswers = errors.New("taker: collected answers are invalid")
)
