package table

import (
	"time"

	"github.com/fireside-games/fireside-backend/internal/narrator"
	"github.com/fireside-games/fireside-backend/internal/session"
)

type Msg interface{ isTableMsg() }

// Join registers a connection and adds (or reconnects) its player.
type Join struct {
	ClientID string
	PlayerID string
	Name     string
	Role     session.Role
	Outbox   chan Snapshot // where this client wants to receive snapshots
	Reply    chan error
}

func (Join) isTableMsg() {}

type Leave struct{ ClientID string }

func (Leave) isTableMsg() {}

type SubmitSetup struct {
	PlayerID string
	Setup    session.Setup
	Reply    chan error
}

func (SubmitSetup) isTableMsg() {}

type ToggleReady struct {
	PlayerID string
	Reply    chan error
}

func (ToggleReady) isTableMsg() {}

type CastVote struct {
	PlayerID string
	VoteID   string
	OptionID string
	Reply    chan error
}

func (CastVote) isTableMsg() {}

type SubmitAction struct {
	PlayerID string
	Text     string
	Reply    chan error
}

func (SubmitAction) isTableMsg() {}

type PlayOutcomeCard struct {
	PlayerID string
	CheckID  string
	Card     string
	Reply    chan error
}

func (PlayOutcomeCard) isTableMsg() {}

type EndSession struct {
	PlayerID string
	Reply    chan error
}

func (EndSession) isTableMsg() {}

type UpdateConfig struct {
	Patch ConfigPatch
	Reply chan error
}

func (UpdateConfig) isTableMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isTableMsg() {}

type Shutdown struct{}

func (Shutdown) isTableMsg() {}

// Internal messages posted back into the inbox by async work. Keeping
// them on the same channel is what serializes all mutation.

type voteExpired struct{ VoteID string }

func (voteExpired) isTableMsg() {}

type pitchReady struct {
	Pitches []session.Pitch
	Err     error
}

func (pitchReady) isTableMsg() {}

type sceneReady struct {
	SceneNumber int
	Opening     narrator.SceneOpening
	Err         error
}

func (sceneReady) isTableMsg() {}

type turnNarrated struct {
	Action  session.PendingAction
	Result  narrator.TurnResult
	Err     error
	Elapsed time.Duration
}

func (turnNarrated) isTableMsg() {}

type continuityReady struct {
	Result narrator.Continuity
	Err    error
}

func (continuityReady) isTableMsg() {}

type summaryReady struct {
	Text string
	Err  error
}

func (summaryReady) isTableMsg() {}

// Snapshot is one versioned copy of the session fanned out to clients.
type Snapshot struct {
	Version int
	State   session.Session
}

// View reflects internal state for tests and diagnostics without races.
type View struct {
	Version     int
	NumClients  int
	State       session.Session
	Processing  bool
	QueueLen    int
	Busy        bool
	Summary     string
	VoteTimeout time.Duration
}
