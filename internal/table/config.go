package table

import (
	"fmt"
	"time"

	"github.com/fireside-games/fireside-backend/internal/session"
)

const DefaultVoteTimeout = 60 * time.Second

// Config is the per-table runtime configuration.
type Config struct {
	VoteTimeout time.Duration
}

func (c *Config) withDefaults() Config {
	out := Config{VoteTimeout: DefaultVoteTimeout}
	if c != nil && c.VoteTimeout > 0 {
		out.VoteTimeout = c.VoteTimeout
	}
	return out
}

// ConfigPatch is a partial runtime-config update. Nil fields are left
// unchanged.
type ConfigPatch struct {
	VoteTimeoutSec *int  `json:"vote_timeout_sec,omitempty"`
	AIDebug        *bool `json:"ai_debug,omitempty"`
}

const (
	minVoteTimeoutSec = 5
	maxVoteTimeoutSec = 600
)

func (p ConfigPatch) Validate() error {
	if p.VoteTimeoutSec != nil {
		if s := *p.VoteTimeoutSec; s < minVoteTimeoutSec || s > maxVoteTimeoutSec {
			return fmt.Errorf("%w: vote_timeout_sec must be between %d and %d",
				session.ErrBadConfig, minVoteTimeoutSec, maxVoteTimeoutSec)
		}
	}
	return nil
}
