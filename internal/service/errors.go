package service

import "errors"

var (
	// ErrEmptyArea means an area has zero catalogue questions. Configuration
	// problem; surfaced to the caller, never retried.
	ErrEmptyArea = errors.New("area has no questions")

	// ErrUnansweredQuestion means advance was called before the current
	// question received an answer.
	ErrUnansweredQuestion = errors.New("current question has no recorded answer")

	// ErrNoActiveQuestion means an answer was submitted to a session with no
	// question awaiting one (session complete, or wrong question id).
	ErrNoActiveQuestion = errors.New("no active question for this submission")

	// ErrInvalidScore means a completion score outside [0,100]; rejected
	// before any persistence write.
	ErrInvalidScore = errors.New("score must be between 0 and 100")

	// ErrSessionNotFound means the diagnostic session id is unknown or the
	// session already finished and was discarded.
	ErrSessionNotFound = errors.New("diagnostic session not found")
)
