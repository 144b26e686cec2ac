package session

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSessionClosed = errors.New("adventure is closed")
var ErrWrongPhase = errors.New("wrong phase for this command")
var ErrQueueBusy = errors.New("an action is already being resolved")
var ErrVoteActive = errors.New("a vote is in progress")
var ErrNoVote = errors.New("no vote is in progress")
var ErrVoteMismatch = errors.New("vote id does not match the active vote")
var ErrUnknownOption = errors.New("unknown vote option")
var ErrNotPlayer = errors.New("only players can do that")
var ErrNotConnected = errors.New("player is not connected")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrNoCheck = errors.New("no outcome check is in progress")
var ErrCheckMismatch = errors.New("check id does not match the active check")
var ErrNotTarget = errors.New("player is not a target of this check")
var ErrCardConflict = errors.New("a different card was already played")
var ErrBadConfig = errors.New("invalid runtime config")

// CapacityError is returned when creating a session would exceed the
// active-session cap. Active names the sessions currently counted
// against the cap so the caller can report them.
type CapacityError struct {
	Limit  int
	Active []string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("session limit of %d reached (active: %s)", e.Limit, strings.Join(e.Active, ", "))
}
