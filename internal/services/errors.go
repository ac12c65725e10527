package services

import (
	"errors"
)

// Domain errors surfaced by the service layer. Handlers map these to HTTP
// status codes; anything else is a storage failure and becomes a 500.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidVote    = errors.New("vote value must be 1 or -1")
	ErrInvalidRating  = errors.New("rating must be between 1 and 10")
	ErrThreadLocked   = errors.New("thread is locked")
	ErrPollClosed     = errors.New("poll is not active")
	ErrPollExpired    = errors.New("poll has expired")
	ErrOptionMismatch = errors.New("option does not belong to this poll")
	ErrAlreadyVoted   = errors.New("already voted on this poll")
	ErrAnonymousVoter = errors.New("anonymous poll requires a client address")
)
