package ws

import (
	"strings"
	"testing"

	"github.com/fireside-games/fireside-backend/internal/table"
	"github.com/fireside-games/fireside-backend/internal/types"
)

func TestToCommandValidation(t *testing.T) {
	sec := 30
	badSec := 1

	cases := []struct {
		name    string
		msg     types.ClientMessage
		wantErr bool
	}{
		{"unknown type", types.ClientMessage{Type: "Dance"}, true},
		{"toggle ready", types.ClientMessage{Type: "ToggleReady"}, false},
		{"vote ok", types.ClientMessage{Type: "CastVote", VoteID: "v1", OptionID: "a"}, false},
		{"vote missing option", types.ClientMessage{Type: "CastVote", VoteID: "v1"}, true},
		{"action ok", types.ClientMessage{Type: "SubmitAction", Text: "I look around"}, false},
		{"action blank", types.ClientMessage{Type: "SubmitAction", Text: "   "}, true},
		{"action too long", types.ClientMessage{Type: "SubmitAction", Text: strings.Repeat("a", maxActionLen+1)}, true},
		{"card ok", types.ClientMessage{Type: "PlayOutcomeCard", CheckID: "c1", Card: "Triumph"}, false},
		{"card missing check", types.ClientMessage{Type: "PlayOutcomeCard", Card: "Triumph"}, true},
		{"setup ok", types.ClientMessage{Type: "SubmitSetup", CharacterName: "Mara"}, false},
		{"setup name too long", types.ClientMessage{Type: "SubmitSetup", CharacterName: strings.Repeat("x", maxNameLen+1)}, true},
		{"end session", types.ClientMessage{Type: "EndSession"}, false},
		{"config ok", types.ClientMessage{Type: "UpdateConfig", VoteTimeoutSec: &sec}, false},
		{"config out of range", types.ClientMessage{Type: "UpdateConfig", VoteTimeoutSec: &badSec}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, reply, err := toCommand(tc.msg, "p1")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected a validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if msg == nil || reply == nil {
				t.Fatalf("valid command must produce a message and a reply channel")
			}
		})
	}
}

func TestToCommandCarriesPlayerID(t *testing.T) {
	msg, _, err := toCommand(types.ClientMessage{Type: "SubmitAction", Text: "go"}, "p7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	action, ok := msg.(table.SubmitAction)
	if !ok {
		t.Fatalf("want table.SubmitAction, got %T", msg)
	}
	if action.PlayerID != "p7" {
		t.Fatalf("player id not carried: %+v", action)
	}
}
