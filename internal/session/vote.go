package session

import (
	"math/rand"
	"time"
)

type VoteKind string

const (
	VotePitch      VoteKind = "pitch"
	VoteTransition VoteKind = "transition"
)

// Option ids used by every scene-transition vote.
const (
	OptionContinue = "continue"
	OptionEnd      = "end"
)

type VoteOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count"`
}

type Resolution struct {
	WinnerID         string   `json:"winner_id"`
	TimeoutTriggered bool     `json:"timeout_triggered"`
	TieBreakApplied  bool     `json:"tie_break_applied"`
	TiedOptionIDs    []string `json:"tied_option_ids,omitempty"`
}

type ActiveVote struct {
	ID         string        `json:"id"`
	Kind       VoteKind      `json:"kind"`
	Title      string        `json:"title"`
	Prompt     string        `json:"prompt"`
	Options    []VoteOption  `json:"options"`
	StartedAt  time.Time     `json:"started_at"`
	Timeout    time.Duration `json:"-"`
	ClosesAt   time.Time     `json:"closes_at"`
	Resolution *Resolution   `json:"resolution,omitempty"`
}

func (v *ActiveVote) Option(id string) *VoteOption {
	for i := range v.Options {
		if v.Options[i].ID == id {
			return &v.Options[i]
		}
	}
	return nil
}

// Retally recomputes option counts from the ballot map and resyncs each
// roster entry's HasVoted flag. Ballots from players no longer on the
// roster still count; the flag resync only covers current entries.
func Retally(s *Session, ballots map[string]string) {
	if s.Vote == nil {
		return
	}
	for i := range s.Vote.Options {
		s.Vote.Options[i].Count = 0
	}
	for _, optionID := range ballots {
		if opt := s.Vote.Option(optionID); opt != nil {
			opt.Count++
		}
	}
	for i := range s.Roster {
		_, voted := ballots[s.Roster[i].PlayerID]
		s.Roster[i].HasVoted = voted
	}
}

// AllConnectedVoted reports whether every connected player has a ballot
// and at least one has voted. This is the early-resolution trigger.
func AllConnectedVoted(s *Session, ballots map[string]string) bool {
	players := s.ConnectedPlayers()
	if len(players) == 0 {
		return false
	}
	for _, i := range players {
		if _, ok := ballots[s.Roster[i].PlayerID]; !ok {
			return false
		}
	}
	return true
}

// Resolve picks the winning option: the unique maximum when there is
// one, otherwise uniformly at random among the options tied at the
// maximum. Zero-ballot votes tie every option.
func Resolve(v *ActiveVote, timeoutTriggered bool, rng *rand.Rand) Resolution {
	max := 0
	for i := range v.Options {
		if v.Options[i].Count > max {
			max = v.Options[i].Count
		}
	}
	var tied []string
	for i := range v.Options {
		if v.Options[i].Count == max {
			tied = append(tied, v.Options[i].ID)
		}
	}
	res := Resolution{TimeoutTriggered: timeoutTriggered}
	if len(tied) == 1 {
		res.WinnerID = tied[0]
		return res
	}
	res.TieBreakApplied = true
	res.TiedOptionIDs = tied
	res.WinnerID = tied[rng.Intn(len(tied))]
	return res
}
