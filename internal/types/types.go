package types

import "github.com/fireside-games/fireside-backend/internal/session"

// ClientMessage is the single envelope for every player command sent
// over the socket. Type selects the command; unrelated fields are
// ignored.
type ClientMessage struct {
	Type string `json:"type"`

	// SubmitSetup
	CharacterName string `json:"character_name,omitempty"`
	Appearance    string `json:"appearance,omitempty"`
	Preference    string `json:"preference,omitempty"`

	// CastVote
	VoteID   string `json:"vote_id,omitempty"`
	OptionID string `json:"option_id,omitempty"`

	// SubmitAction
	Text string `json:"text,omitempty"`

	// PlayOutcomeCard
	CheckID string `json:"check_id,omitempty"`
	Card    string `json:"card,omitempty"`

	// UpdateConfig
	VoteTimeoutSec *int  `json:"vote_timeout_sec,omitempty"`
	AIDebug        *bool `json:"ai_debug,omitempty"`
}

type ServerMessage struct {
	Type    string           `json:"type"` // "StateSnapshot" | "Error"
	Version int              `json:"version,omitempty"`
	State   *session.Session `json:"state,omitempty"`
	Error   string           `json:"error,omitempty"`
}
