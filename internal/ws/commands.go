package ws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fireside-games/fireside-backend/internal/session"
	"github.com/fireside-games/fireside-backend/internal/table"
	"github.com/fireside-games/fireside-backend/internal/types"
)

var errUnknownType = errors.New("unknown message type")

const (
	maxActionLen = 2000
	maxNameLen   = 80
	maxFieldLen  = 500
)

// toCommand validates a wire message and builds the table message for
// it. Malformed payloads never reach the state machine. The returned
// channel, when non-nil, carries the table's accept/reject result.
func toCommand(cm types.ClientMessage, playerID string) (table.Msg, chan error, error) {
	reply := make(chan error, 1)
	switch cm.Type {
	case "SubmitSetup":
		setup := session.Setup{
			CharacterName: strings.TrimSpace(cm.CharacterName),
			Appearance:    strings.TrimSpace(cm.Appearance),
			Preference:    strings.TrimSpace(cm.Preference),
		}
		if len(setup.CharacterName) > maxNameLen || len(setup.Appearance) > maxFieldLen || len(setup.Preference) > maxFieldLen {
			return nil, nil, fmt.Errorf("setup fields too long")
		}
		return table.SubmitSetup{PlayerID: playerID, Setup: setup, Reply: reply}, reply, nil

	case "ToggleReady":
		return table.ToggleReady{PlayerID: playerID, Reply: reply}, reply, nil

	case "CastVote":
		if cm.VoteID == "" || cm.OptionID == "" {
			return nil, nil, fmt.Errorf("vote_id and option_id are required")
		}
		return table.CastVote{PlayerID: playerID, VoteID: cm.VoteID, OptionID: cm.OptionID, Reply: reply}, reply, nil

	case "SubmitAction":
		text := strings.TrimSpace(cm.Text)
		if text == "" {
			return nil, nil, fmt.Errorf("action text is required")
		}
		if len(text) > maxActionLen {
			return nil, nil, fmt.Errorf("action text too long")
		}
		return table.SubmitAction{PlayerID: playerID, Text: text, Reply: reply}, reply, nil

	case "PlayOutcomeCard":
		card := strings.TrimSpace(cm.Card)
		if cm.CheckID == "" || card == "" {
			return nil, nil, fmt.Errorf("check_id and card are required")
		}
		return table.PlayOutcomeCard{PlayerID: playerID, CheckID: cm.CheckID, Card: card, Reply: reply}, reply, nil

	case "EndSession":
		return table.EndSession{PlayerID: playerID, Reply: reply}, reply, nil

	case "UpdateConfig":
		patch := table.ConfigPatch{VoteTimeoutSec: cm.VoteTimeoutSec, AIDebug: cm.AIDebug}
		if err := patch.Validate(); err != nil {
			return nil, nil, err
		}
		return table.UpdateConfig{Patch: patch, Reply: reply}, reply, nil

	default:
		return nil, nil, errUnknownType
	}
}
