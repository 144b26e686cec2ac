// Package table runs one adventure session on its own goroutine. All
// session state is mutated exclusively inside the actor loop; commands,
// timer expiries, and narration results all arrive through the same
// typed inbox, which is what makes the boolean guards race-free.
package table

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/narrator"
	"github.com/fireside-games/fireside-backend/internal/session"
)

const scenePlaceholderIntro = "The storyteller is setting the scene..."

type Table struct {
	id      string
	inbox   chan Msg
	st      *session.Session
	rt      *session.Runtime
	cfg     Config
	links   map[string]string // client id → player id
	clients map[string]chan Snapshot
	version int

	pitchChoices []session.Pitch // options of the running pitch vote
	voteTimer    *time.Timer

	engine narrator.Engine
	hooks  Hooks
	rng    *rand.Rand
	log    *zap.Logger

	active atomic.Bool // ≥1 connected player and not closed

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, id string, engine narrator.Engine, hooks Hooks, cfg *Config, log *zap.Logger) *Table {
	ctx, cancel := context.WithCancel(parent)
	if hooks == nil {
		hooks = NopHooks{}
	}
	t := &Table{
		id:      id,
		inbox:   make(chan Msg, 64),
		st:      session.New(id),
		rt:      session.NewRuntime(),
		cfg:     cfg.withDefaults(),
		links:   make(map[string]string),
		clients: make(map[string]chan Snapshot),
		engine:  engine,
		hooks:   hooks,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.With(zap.String("session", id)),
		ctx:     ctx,
		cancel:  cancel,
	}
	go t.loop()
	return t
}

func (t *Table) ID() string { return t.id }

// Inbox exposes the message channel to the transport layer and tests.
func (t *Table) Inbox() chan<- Msg { return t.inbox }

// Active reports whether the session counts against the session cap:
// at least one connected player and not closed. Maintained by the loop,
// readable from any goroutine.
func (t *Table) Active() bool { return t.active.Load() }

// post delivers an internal message without blocking forever if the
// loop has shut down.
func (t *Table) post(m Msg) {
	select {
	case t.inbox <- m:
	case <-t.ctx.Done():
	}
}

func (t *Table) loop() {
	for {
		select {
		case <-t.ctx.Done():
			t.shutdown()
			return

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- t.handleJoin(msg)
			case Leave:
				t.handleLeave(msg.ClientID)
			case SubmitSetup:
				msg.Reply <- t.handleSubmitSetup(msg)
			case ToggleReady:
				msg.Reply <- t.handleToggleReady(msg.PlayerID)
			case CastVote:
				msg.Reply <- t.handleCastVote(msg)
			case SubmitAction:
				msg.Reply <- t.handleSubmitAction(msg)
			case PlayOutcomeCard:
				msg.Reply <- t.handlePlayOutcomeCard(msg)
			case EndSession:
				msg.Reply <- t.handleEndSession(msg.PlayerID)
			case UpdateConfig:
				msg.Reply <- t.handleUpdateConfig(msg.Patch)

			case voteExpired:
				if t.st.Vote != nil && t.st.Vote.ID == msg.VoteID {
					t.resolveVote(true)
					t.publish()
				}
			case pitchReady:
				t.handlePitchReady(msg)
			case sceneReady:
				t.handleSceneReady(msg)
			case turnNarrated:
				t.handleTurnNarrated(msg)
			case continuityReady:
				t.handleContinuityReady(msg)
			case summaryReady:
				t.handleSummaryReady(msg)

			case GetState:
				msg.Reply <- View{
					Version:     t.version,
					NumClients:  len(t.clients),
					State:       t.st.Clone(),
					Processing:  t.rt.Processing,
					QueueLen:    len(t.rt.Queue),
					Busy:        t.rt.Busy(t.st),
					Summary:     t.rt.Summary,
					VoteTimeout: t.cfg.VoteTimeout,
				}
			case Shutdown:
				t.shutdown()
				return
			}
		}
	}
}

func (t *Table) shutdown() {
	t.stopVoteTimer()
	for id, ch := range t.clients {
		close(ch)
		delete(t.clients, id)
	}
	t.active.Store(false)
	t.cancel()
}

// publish bumps the version, fans the snapshot out, and fires the
// session-updated hook. Slow clients are dropped, not waited on.
func (t *Table) publish() {
	t.version++
	snap := Snapshot{Version: t.version, State: t.st.Clone()}
	for id, ch := range t.clients {
		select {
		case ch <- snap:
		default:
			// Drop the slow client but keep its link so a later Leave
			// still disconnects the player.
			close(ch)
			delete(t.clients, id)
		}
	}
	t.hooks.SessionUpdated(t.id)
}

func (t *Table) refreshActive() {
	t.active.Store(!t.st.Closed && len(t.st.ConnectedPlayers()) > 0)
}

func (t *Table) appendTranscript(kind session.EntryKind, actor, text string) {
	e := t.st.Append(kind, actor, text)
	t.hooks.TranscriptAppended(t.id, e)
}

func displayName(e *session.RosterEntry) string {
	if e.Setup != nil && e.Setup.CharacterName != "" {
		return e.Setup.CharacterName
	}
	return e.Name
}

// connectedEntry resolves a command's submitter: must exist, be a
// player, and be connected.
func (t *Table) connectedEntry(playerID string) (*session.RosterEntry, error) {
	entry := t.st.Entry(playerID)
	if entry == nil {
		return nil, session.ErrUnknownPlayer
	}
	if entry.Role != session.RolePlayer {
		return nil, session.ErrNotPlayer
	}
	if !entry.Connected {
		return nil, session.ErrNotConnected
	}
	return entry, nil
}

// --- roster -----------------------------------------------------------------

func (t *Table) handleJoin(msg Join) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	entry := t.st.Entry(msg.PlayerID)
	if entry == nil {
		t.st.Roster = append(t.st.Roster, session.RosterEntry{
			PlayerID:  msg.PlayerID,
			Name:      msg.Name,
			Role:      msg.Role,
			Connected: true,
		})
	} else {
		// Idempotent reconnect: name may change, role never does.
		entry.Name = msg.Name
		entry.Connected = true
	}
	t.links[msg.ClientID] = msg.PlayerID
	t.clients[msg.ClientID] = msg.Outbox

	// A client reconnecting mid-vote needs its has-voted flag back.
	session.Retally(t.st, t.rt.Ballots)

	// A ready player reconnecting after a failed trigger can complete
	// the ready set again.
	t.maybeStartPitchVote()

	t.refreshActive()
	t.publish()
	return nil
}

func (t *Table) handleLeave(clientID string) {
	playerID, ok := t.links[clientID]
	if !ok {
		return
	}
	delete(t.links, clientID)
	if ch, ok := t.clients[clientID]; ok {
		close(ch)
		delete(t.clients, clientID)
	}
	// Only disconnect the player once their last connection is gone.
	for _, pid := range t.links {
		if pid == playerID {
			return
		}
	}
	entry := t.st.Entry(playerID)
	if entry == nil {
		return
	}
	entry.Connected = false

	if t.st.Check != nil && t.st.Check.Target(playerID) != nil {
		if t.st.Check.RemoveTarget(playerID) {
			// The departed target may have been the last one holding the
			// barrier open.
			t.completeCheckIfReady()
		} else {
			// Last target gone: cancel the check and the gated action.
			t.st.Check = nil
			t.rt.PendingAction = nil
			t.appendTranscript(session.EntrySystem, "", "The outcome check was cancelled: no one is left to play a card.")
		}
	}

	// A disconnect can complete the turnout or the ready set.
	if t.st.Vote != nil && session.AllConnectedVoted(t.st, t.rt.Ballots) {
		t.resolveVote(false)
	}
	t.maybeStartPitchVote()

	t.refreshActive()
	t.publish()
}

func (t *Table) handleSubmitSetup(msg SubmitSetup) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	entry, err := t.connectedEntry(msg.PlayerID)
	if err != nil {
		return err
	}
	setup := msg.Setup
	entry.Setup = &setup
	t.publish()
	return nil
}

func (t *Table) handleToggleReady(playerID string) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	if t.st.Phase != session.PhaseLobby {
		return session.ErrWrongPhase
	}
	entry, err := t.connectedEntry(playerID)
	if err != nil {
		return err
	}
	entry.Ready = !entry.Ready
	t.maybeStartPitchVote()
	t.publish()
	return nil
}

// --- pitch vote -------------------------------------------------------------

// maybeStartPitchVote fires the lobby→vote transition once every
// connected player is ready. PitchPending keeps a second generation
// request from racing the first across a disconnect/reconnect.
func (t *Table) maybeStartPitchVote() {
	if t.st.Phase != session.PhaseLobby || t.st.Vote != nil || t.rt.PitchPending {
		return
	}
	if !t.st.AllConnectedReady() {
		return
	}
	t.rt.PitchPending = true
	t.hooks.NarrationThinking(t.id, true, "pitching")
	party := t.partyDescriptions()
	go func() {
		pitches, err := t.engine.GeneratePitchOptions(t.ctx, party)
		t.post(pitchReady{Pitches: pitches, Err: err})
	}()
}

func (t *Table) partyDescriptions() []narrator.PlayerDescription {
	var out []narrator.PlayerDescription
	for _, i := range t.st.ConnectedPlayers() {
		e := t.st.Roster[i]
		d := narrator.PlayerDescription{Name: e.Name}
		if e.Setup != nil {
			d.CharacterName = e.Setup.CharacterName
			d.Appearance = e.Setup.Appearance
			d.Preference = e.Setup.Preference
		}
		out = append(out, d)
	}
	return out
}

func (t *Table) handlePitchReady(msg pitchReady) {
	t.rt.PitchPending = false
	t.hooks.NarrationThinking(t.id, false, "")
	if t.st.Closed || t.st.Phase != session.PhaseLobby {
		return
	}
	if !t.st.AllConnectedReady() {
		// Someone unreadied or left while the engine was thinking; the
		// next ready-toggle or disconnect re-evaluates the trigger.
		return
	}
	pitches := msg.Pitches
	if msg.Err != nil {
		t.log.Warn("pitch generation failed, using fallback pitches", zap.Error(msg.Err))
		pitches = narrator.FallbackPitches
	}
	t.pitchChoices = pitches
	options := make([]session.VoteOption, len(pitches))
	for i, p := range pitches {
		options[i] = session.VoteOption{
			ID:          fmt.Sprintf("pitch-%d", i+1),
			Title:       p.Title,
			Description: p.Description,
		}
	}
	t.st.Phase = session.PhaseVote
	t.hooks.PhaseChanged(t.id, session.PhaseVote)
	t.startVote(session.VotePitch, "Choose your adventure", "Vote for the story you want to play.", options)
	t.appendTranscript(session.EntrySystem, "", "The table is ready. Vote for tonight's adventure!")
	t.publish()
}

// --- voting -----------------------------------------------------------------

func (t *Table) startVote(kind session.VoteKind, title, prompt string, options []session.VoteOption) {
	t.stopVoteTimer()
	t.rt.Ballots = make(map[string]string)
	for i := range t.st.Roster {
		t.st.Roster[i].HasVoted = false
	}
	now := time.Now()
	vote := &session.ActiveVote{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Prompt:    prompt,
		Options:   options,
		StartedAt: now,
		Timeout:   t.cfg.VoteTimeout,
		ClosesAt:  now.Add(t.cfg.VoteTimeout),
	}
	t.st.Vote = vote
	voteID := vote.ID
	t.voteTimer = time.AfterFunc(t.cfg.VoteTimeout, func() {
		t.post(voteExpired{VoteID: voteID})
	})
}

func (t *Table) stopVoteTimer() {
	if t.voteTimer != nil {
		t.voteTimer.Stop()
		t.voteTimer = nil
	}
}

func (t *Table) handleCastVote(msg CastVote) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	vote := t.st.Vote
	if vote == nil {
		return session.ErrNoVote
	}
	if vote.ID != msg.VoteID {
		return session.ErrVoteMismatch
	}
	if vote.Option(msg.OptionID) == nil {
		return session.ErrUnknownOption
	}
	if _, err := t.connectedEntry(msg.PlayerID); err != nil {
		return err
	}
	if _, voted := t.rt.Ballots[msg.PlayerID]; voted {
		// First vote wins; a repeat ballot is a harmless no-op.
		return nil
	}
	t.rt.Ballots[msg.PlayerID] = msg.OptionID
	session.Retally(t.st, t.rt.Ballots)

	if session.AllConnectedVoted(t.st, t.rt.Ballots) {
		t.resolveVote(false)
	}
	t.publish()
	return nil
}

// resolveVote is the single exit for every vote. The timer is stopped
// first, so a concurrent expiry for the same vote id finds Vote==nil
// and does nothing, so at most one resolution per vote.
func (t *Table) resolveVote(timeoutTriggered bool) {
	vote := t.st.Vote
	if vote == nil {
		return
	}
	t.stopVoteTimer()
	session.Retally(t.st, t.rt.Ballots)
	res := session.Resolve(vote, timeoutTriggered, t.rng)
	vote.Resolution = &res

	trigger := "turnout"
	if timeoutTriggered {
		trigger = "timeout"
	}
	votesResolvedTotal.WithLabelValues(string(vote.Kind), trigger).Inc()
	t.log.Info("vote resolved",
		zap.String("vote", vote.ID),
		zap.String("kind", string(vote.Kind)),
		zap.String("winner", res.WinnerID),
		zap.Bool("timeout", res.TimeoutTriggered),
		zap.Bool("tie_break", res.TieBreakApplied))

	winner := vote.Option(res.WinnerID)
	if winner != nil {
		t.appendTranscript(session.EntrySystem, "", fmt.Sprintf("The table voted: %s.", winner.Title))
	}

	// Let clients see the resolution before the vote is cleared.
	t.publish()

	kind, winnerID := vote.Kind, res.WinnerID
	t.st.Vote = nil
	for i := range t.st.Roster {
		t.st.Roster[i].HasVoted = false
	}

	switch kind {
	case session.VotePitch:
		t.applyPitch(winnerID)
		t.st.Phase = session.PhasePlay
		t.hooks.PhaseChanged(t.id, session.PhasePlay)
		t.startScene()
	case session.VoteTransition:
		if winnerID == session.OptionEnd {
			t.closeSession()
		} else {
			t.startScene()
		}
	}
}

func (t *Table) applyPitch(optionID string) {
	var idx int
	if _, err := fmt.Sscanf(optionID, "pitch-%d", &idx); err == nil && idx >= 1 && idx <= len(t.pitchChoices) {
		pitch := t.pitchChoices[idx-1]
		t.rt.Pitch = &pitch
	}
	t.pitchChoices = nil
}

// --- scenes -----------------------------------------------------------------

// startScene installs a placeholder scene immediately and fills it in
// once the engine answers. Players see the new scene number right away.
func (t *Table) startScene() {
	t.rt.SceneCount++
	n := t.rt.SceneCount
	t.st.Scene = &session.Scene{
		Number:  n,
		Intro:   scenePlaceholderIntro,
		Pending: true,
	}
	t.hooks.NarrationThinking(t.id, true, "scene")

	snap := t.st.Clone()
	req := narrator.SceneRequest{
		SceneNumber:      n,
		PreviousSummary:  t.rt.Summary,
		Party:            t.partyDescriptions(),
		RecentTranscript: snap.RecentTranscript(12),
	}
	if t.rt.Pitch != nil {
		req.Pitch = *t.rt.Pitch
	}
	go func() {
		opening, err := t.engine.GenerateSceneOpening(t.ctx, req)
		t.post(sceneReady{SceneNumber: n, Opening: opening, Err: err})
	}()
}

func (t *Table) handleSceneReady(msg sceneReady) {
	t.hooks.NarrationThinking(t.id, false, "")
	if t.st.Closed || t.st.Scene == nil || t.st.Scene.Number != msg.SceneNumber {
		return // stale: the scene moved on while the engine was thinking
	}
	opening := msg.Opening
	if msg.Err != nil {
		t.log.Warn("scene opening failed, using fallback", zap.Error(msg.Err))
		opening = narrator.FallbackOpening(msg.SceneNumber)
	}
	scene := t.st.Scene
	scene.Intro = opening.IntroText
	scene.Orientation = opening.OrientationPoints
	scene.Prompt = opening.PlayerPrompt
	scene.Pending = false

	t.appendTranscript(session.EntryNarration, "", opening.IntroText)
	t.hooks.NarrationResult(t.id, opening.IntroText)
	t.publish()
}

// --- actions & outcome checks -----------------------------------------------

func (t *Table) handleSubmitAction(msg SubmitAction) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	if t.rt.Busy(t.st) {
		return session.ErrQueueBusy
	}
	if t.st.Phase != session.PhasePlay {
		return session.ErrWrongPhase
	}
	if t.st.Vote != nil {
		return session.ErrVoteActive
	}
	entry, err := t.connectedEntry(msg.PlayerID)
	if err != nil {
		return err
	}
	name := displayName(entry)

	t.rt.PendingAction = &session.PendingAction{PlayerID: msg.PlayerID, Text: msg.Text}
	t.st.Check = &session.OutcomeCheck{
		ID:          uuid.NewString(),
		Source:      session.CheckSourceAction,
		Prompt:      fmt.Sprintf("%s, play an outcome card to see how this goes.", name),
		RequestedAt: time.Now(),
		Targets:     []session.OutcomeTarget{{PlayerID: msg.PlayerID, Name: name}},
	}
	t.appendTranscript(session.EntryPlayer, name, msg.Text)
	t.appendTranscript(session.EntrySystem, "", t.st.Check.Prompt)
	t.publish()
	return nil
}

func (t *Table) handlePlayOutcomeCard(msg PlayOutcomeCard) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	check := t.st.Check
	if check == nil {
		return session.ErrNoCheck
	}
	if check.ID != msg.CheckID {
		return session.ErrCheckMismatch
	}
	target := check.Target(msg.PlayerID)
	if target == nil {
		return session.ErrNotTarget
	}
	if target.Card == msg.Card {
		return nil // replaying the same card is a no-op
	}
	if target.Card != "" {
		return session.ErrCardConflict
	}
	now := time.Now()
	target.Card = msg.Card
	target.PlayedAt = &now
	t.appendTranscript(session.EntrySystem, "", fmt.Sprintf("%s plays %s.", target.Name, msg.Card))

	t.completeCheckIfReady()
	t.publish()
	return nil
}

// completeCheckIfReady clears the check once every target has played,
// moving the gated action onto the queue with the card summary attached.
func (t *Table) completeCheckIfReady() {
	check := t.st.Check
	if check == nil || !check.AllPlayed() {
		return
	}
	if t.rt.PendingAction != nil {
		action := *t.rt.PendingAction
		action.CardNotes = check.CardSummary()
		t.rt.Queue = append(t.rt.Queue, action)
		t.rt.PendingAction = nil
	}
	t.st.Check = nil
	if !t.rt.Processing {
		t.startProcessing()
	}
}

// --- turn queue -------------------------------------------------------------

func (t *Table) startProcessing() {
	if t.rt.Processing || len(t.rt.Queue) == 0 {
		return
	}
	t.rt.Processing = true
	t.processNext()
}

// processNext dispatches the queue head to the engine. Processing stays
// true from here until the queue drains; the queue being momentarily
// empty while a call is outstanding must still read as busy.
func (t *Table) processNext() {
	action := t.rt.Queue[0]
	t.rt.Queue = t.rt.Queue[1:]
	t.rt.TurnCount++

	actorName := action.PlayerID
	if entry := t.st.Entry(action.PlayerID); entry != nil {
		actorName = displayName(entry)
	}
	t.hooks.NarrationThinking(t.id, true, "narrating")

	snap := t.st.Clone()
	req := narrator.TurnRequest{
		ActorName:        actorName,
		ActionText:       action.Text,
		CardNotes:        action.CardNotes,
		TurnNumber:       t.rt.TurnCount,
		RecentTranscript: snap.RecentTranscript(12),
		RollingSummary:   t.rt.Summary,
	}
	if t.rt.Pitch != nil {
		req.Pitch = *t.rt.Pitch
	}
	if t.st.Scene != nil {
		req.Scene = *t.st.Scene
	}
	go func() {
		start := time.Now()
		result, err := t.engine.NarrateTurn(t.ctx, req)
		t.post(turnNarrated{Action: action, Result: result, Err: err, Elapsed: time.Since(start)})
	}()
}

func (t *Table) handleTurnNarrated(msg turnNarrated) {
	t.hooks.NarrationThinking(t.id, false, "")

	t.rt.Latency.Add(msg.Elapsed)
	t.st.Latency = t.rt.Latency.Stats()
	narrationTurnDuration.Observe(msg.Elapsed.Seconds())

	if t.st.Closed {
		// Session ended while the call was in flight; drop the result.
		t.rt.Processing = false
		t.rt.Queue = nil
		return
	}

	result := msg.Result
	if msg.Err != nil {
		t.log.Warn("turn narration failed, failing forward", zap.Error(msg.Err))
		narrationTurnsTotal.WithLabelValues("fallback").Inc()
		result = narrator.FallbackTurn()
	} else {
		narrationTurnsTotal.WithLabelValues("ok").Inc()
	}

	t.appendTranscript(session.EntryNarration, "", result.Text)
	t.hooks.NarrationResult(t.id, result.Text)

	if result.CloseScene {
		// The scene is over: whatever else was queued no longer fits.
		t.rt.Queue = nil
		t.rt.Processing = false
		if result.SceneSummary != "" {
			t.appendTranscript(session.EntrySystem, "", "The scene draws to a close. "+result.SceneSummary)
		}
		t.refreshContinuity()
		t.startTransitionVote()
	} else if len(t.rt.Queue) > 0 {
		t.processNext()
	} else {
		t.rt.Processing = false
	}
	t.publish()
}

func (t *Table) startTransitionVote() {
	options := []session.VoteOption{
		{ID: session.OptionContinue, Title: "Press on", Description: "Open the next scene."},
		{ID: session.OptionEnd, Title: "End the adventure", Description: "Wrap up and hear the epilogue."},
	}
	t.startVote(session.VoteTransition, "The scene draws to a close", "Continue to a new scene, or end here?", options)
}

func (t *Table) refreshContinuity() {
	transcript := t.st.Clone().Transcript
	go func() {
		cont, err := t.engine.RefreshContinuity(t.ctx, transcript)
		t.post(continuityReady{Result: cont, Err: err})
	}()
}

func (t *Table) handleContinuityReady(msg continuityReady) {
	if msg.Err != nil {
		// The old summary keeps serving; continuity refresh is best-effort.
		t.log.Warn("continuity refresh failed", zap.Error(msg.Err))
		return
	}
	if msg.Result.RollingSummary != "" {
		t.rt.Summary = msg.Result.RollingSummary
	}
	if t.st.AIDebug && len(msg.Result.Warnings) > 0 {
		for _, w := range msg.Result.Warnings {
			t.appendTranscript(session.EntryDebug, "", "continuity: "+w)
		}
		t.publish()
	}
}

// --- ending -----------------------------------------------------------------

func (t *Table) handleEndSession(playerID string) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	entry := t.st.Entry(playerID)
	if entry == nil {
		return session.ErrUnknownPlayer
	}
	if !entry.Connected {
		return session.ErrNotConnected
	}
	t.closeSession()
	t.publish()
	return nil
}

func (t *Table) closeSession() {
	t.stopVoteTimer()
	t.st.Vote = nil
	t.st.Check = nil
	t.rt.PendingAction = nil
	t.rt.Queue = nil
	t.st.Closed = true
	t.st.Phase = session.PhaseEnding
	t.hooks.PhaseChanged(t.id, session.PhaseEnding)
	t.appendTranscript(session.EntrySystem, "", "The adventure comes to a close.")
	t.refreshActive()

	transcript := t.st.Clone().Transcript
	go func() {
		text, err := t.engine.SummarizeSession(t.ctx, transcript)
		t.post(summaryReady{Text: text, Err: err})
	}()
}

func (t *Table) handleSummaryReady(msg summaryReady) {
	text := msg.Text
	if msg.Err != nil {
		t.log.Warn("session summary failed, using fallback", zap.Error(msg.Err))
		text = narrator.FallbackSummaryText
	}
	t.appendTranscript(session.EntrySystem, "", text)
	t.publish()
}

// --- config -----------------------------------------------------------------

func (t *Table) handleUpdateConfig(patch ConfigPatch) error {
	if t.st.Closed {
		return session.ErrSessionClosed
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.VoteTimeoutSec != nil {
		// Applies to votes started from now on; a running vote keeps
		// its original deadline.
		t.cfg.VoteTimeout = time.Duration(*patch.VoteTimeoutSec) * time.Second
	}
	if patch.AIDebug != nil {
		t.st.AIDebug = *patch.AIDebug
	}
	t.publish()
	return nil
}
