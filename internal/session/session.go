package session

import (
	"slices"
	"time"
)

type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseVote   Phase = "vote"
	PhasePlay   Phase = "play"
	PhaseEnding Phase = "ending"
)

type Role string

const (
	RolePlayer Role = "player"
	RoleScreen Role = "screen"
)

// Setup is the per-player character sheet filled in during the lobby.
type Setup struct {
	CharacterName string `json:"character_name"`
	Appearance    string `json:"appearance"`
	Preference    string `json:"preference"`
}

// RosterEntry tracks one participant ever seen in the session. Entries
// are never removed; disconnects only clear Connected so transcript
// attribution survives.
type RosterEntry struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Connected bool   `json:"connected"`
	Ready     bool   `json:"ready"`
	HasVoted  bool   `json:"has_voted"`
	Setup     *Setup `json:"setup,omitempty"`
}

type EntryKind string

const (
	EntryPlayer    EntryKind = "player"
	EntrySystem    EntryKind = "system"
	EntryNarration EntryKind = "narration"
	EntryDebug     EntryKind = "debug"
)

type TranscriptEntry struct {
	Kind  EntryKind `json:"kind"`
	Actor string    `json:"actor,omitempty"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Pitch is one adventure premise offered during the pitch vote.
type Pitch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Scene is the current stage of play. A scene is created with a
// placeholder intro and Pending=true, then filled once the narration
// engine answers.
type Scene struct {
	Number      int      `json:"number"`
	Intro       string   `json:"intro"`
	Orientation []string `json:"orientation,omitempty"`
	Prompt      string   `json:"prompt,omitempty"`
	Pending     bool     `json:"pending"`
}

type LatencyStats struct {
	AverageMs float64 `json:"average_ms"`
	P90Ms     float64 `json:"p90_ms"`
	Samples   int     `json:"samples"`
}

// Session is the externally visible record for one adventure. All
// mutation happens on the owning table's goroutine.
type Session struct {
	ID         string            `json:"id"`
	Phase      Phase             `json:"phase"`
	Roster     []RosterEntry     `json:"roster"`
	Vote       *ActiveVote       `json:"vote,omitempty"`
	Check      *OutcomeCheck     `json:"check,omitempty"`
	Scene      *Scene            `json:"scene,omitempty"`
	Transcript []TranscriptEntry `json:"transcript"`
	Closed     bool              `json:"closed"`
	AIDebug    bool              `json:"ai_debug"`
	Latency    LatencyStats      `json:"latency"`
}

func New(id string) *Session {
	return &Session{
		ID:         id,
		Phase:      PhaseLobby,
		Roster:     []RosterEntry{},
		Transcript: []TranscriptEntry{},
	}
}

// Entry returns a pointer into the roster for in-place mutation, or nil.
func (s *Session) Entry(playerID string) *RosterEntry {
	for i := range s.Roster {
		if s.Roster[i].PlayerID == playerID {
			return &s.Roster[i]
		}
	}
	return nil
}

// ConnectedPlayers returns the indices of connected player-role entries,
// in join order.
func (s *Session) ConnectedPlayers() []int {
	var out []int
	for i := range s.Roster {
		if s.Roster[i].Role == RolePlayer && s.Roster[i].Connected {
			out = append(out, i)
		}
	}
	return out
}

// AllConnectedReady reports whether every connected player is ready and
// at least one player is connected. This is the lobby→vote trigger.
func (s *Session) AllConnectedReady() bool {
	players := s.ConnectedPlayers()
	if len(players) == 0 {
		return false
	}
	for _, i := range players {
		if !s.Roster[i].Ready {
			return false
		}
	}
	return true
}

func (s *Session) Append(kind EntryKind, actor, text string) TranscriptEntry {
	e := TranscriptEntry{Kind: kind, Actor: actor, Text: text, At: time.Now()}
	s.Transcript = append(s.Transcript, e)
	return e
}

// RecentTranscript returns up to the last n non-debug entries.
func (s *Session) RecentTranscript(n int) []TranscriptEntry {
	var out []TranscriptEntry
	for i := len(s.Transcript) - 1; i >= 0 && len(out) < n; i-- {
		if s.Transcript[i].Kind == EntryDebug {
			continue
		}
		out = append(out, s.Transcript[i])
	}
	slices.Reverse(out)
	return out
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *Session) Clone() Session {
	out := *s
	out.Roster = slices.Clone(s.Roster)
	for i := range out.Roster {
		if out.Roster[i].Setup != nil {
			setup := *out.Roster[i].Setup
			out.Roster[i].Setup = &setup
		}
	}
	out.Transcript = slices.Clone(s.Transcript)
	if s.Vote != nil {
		v := *s.Vote
		v.Options = slices.Clone(s.Vote.Options)
		if s.Vote.Resolution != nil {
			r := *s.Vote.Resolution
			r.TiedOptionIDs = slices.Clone(r.TiedOptionIDs)
			v.Resolution = &r
		}
		out.Vote = &v
	}
	if s.Check != nil {
		c := *s.Check
		c.Targets = slices.Clone(s.Check.Targets)
		for i := range c.Targets {
			if c.Targets[i].PlayedAt != nil {
				at := *c.Targets[i].PlayedAt
				c.Targets[i].PlayedAt = &at
			}
		}
		out.Check = &c
	}
	if s.Scene != nil {
		sc := *s.Scene
		sc.Orientation = slices.Clone(s.Scene.Orientation)
		out.Scene = &sc
	}
	return out
}
