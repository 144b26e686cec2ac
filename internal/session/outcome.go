package session

import (
	"fmt"
	"strings"
	"time"
)

// CheckSourceAction marks checks opened by a submitted player action.
const CheckSourceAction = "player_action"

type OutcomeTarget struct {
	PlayerID string     `json:"player_id"`
	Name     string     `json:"name"`
	Card     string     `json:"card,omitempty"`
	PlayedAt *time.Time `json:"played_at,omitempty"`
}

// OutcomeCheck is a barrier: every target must play exactly one card
// before the gated action may proceed.
type OutcomeCheck struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Prompt      string          `json:"prompt"`
	RequestedAt time.Time       `json:"requested_at"`
	Targets     []OutcomeTarget `json:"targets"`
}

func (c *OutcomeCheck) Target(playerID string) *OutcomeTarget {
	for i := range c.Targets {
		if c.Targets[i].PlayerID == playerID {
			return &c.Targets[i]
		}
	}
	return nil
}

func (c *OutcomeCheck) AllPlayed() bool {
	for i := range c.Targets {
		if c.Targets[i].Card == "" {
			return false
		}
	}
	return len(c.Targets) > 0
}

// RemoveTarget drops a target (disconnect handling) and reports whether
// any targets remain.
func (c *OutcomeCheck) RemoveTarget(playerID string) bool {
	kept := c.Targets[:0]
	for _, t := range c.Targets {
		if t.PlayerID != playerID {
			kept = append(kept, t)
		}
	}
	c.Targets = kept
	return len(c.Targets) > 0
}

// CardSummary renders the played cards for the narration prompt, e.g.
// "Mara played Triumph; Bram played Setback".
func (c *OutcomeCheck) CardSummary() string {
	parts := make([]string, 0, len(c.Targets))
	for _, t := range c.Targets {
		if t.Card != "" {
			parts = append(parts, fmt.Sprintf("%s played %s", t.Name, t.Card))
		}
	}
	return strings.Join(parts, "; ")
}
