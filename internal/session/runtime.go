package session

// PendingAction is one submitted player action waiting on its outcome
// check or queued behind the in-flight narration turn.
type PendingAction struct {
	PlayerID  string
	Text      string
	CardNotes string
}

// Runtime holds the per-session mutable state that never leaves the
// process: ballots, the action queue, and the boolean guards the
// concurrency model leans on. It is owned by the table goroutine and
// must not be shared.
type Runtime struct {
	Ballots       map[string]string // player id → option id, cleared on each new vote
	Queue         []PendingAction
	PendingAction *PendingAction // action gated by the open outcome check
	Processing    bool           // a narration call is outstanding
	PitchPending  bool           // pitch option generation is in flight
	SceneCount    int
	TurnCount     int
	Pitch         *Pitch
	Summary       string // rolling continuity summary
	Latency       *LatencyWindow
}

func NewRuntime() *Runtime {
	return &Runtime{
		Ballots: make(map[string]string),
		Latency: NewLatencyWindow(LatencyWindowSize),
	}
}

// Busy is the composite guard that blocks new action submissions: a
// turn is processing, actions are queued, an action awaits its outcome
// check, or a check is open. The queue being empty is not enough; it
// drains before the narration call returns.
func (rt *Runtime) Busy(s *Session) bool {
	return rt.Processing || len(rt.Queue) > 0 || rt.PendingAction != nil || s.Check != nil
}
