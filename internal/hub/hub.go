// Package hub owns the live session map. Like each table, the hub is a
// single goroutine draining a typed inbox, so the map needs no lock.
package hub

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/narrator"
	"github.com/fireside-games/fireside-backend/internal/session"
	"github.com/fireside-games/fireside-backend/internal/table"
)

type HubMsg interface{ isHubMsg() }

// EnsureTable fetches the table for a session id, creating it if absent.
// Creation is subject to the active-session cap; on overflow Reply
// carries a *session.CapacityError naming the active sessions.
type EnsureTable struct {
	ID    string
	Reply chan Result
}

type GetTable struct {
	ID    string
	Reply chan *table.Table
}

type RemoveTable struct{ ID string }

// UpdateAllConfig applies a runtime-config patch to every live session.
// No cross-session ordering is guaranteed.
type UpdateAllConfig struct {
	Patch table.ConfigPatch
	Reply chan error
}

type ShutdownHub struct{}

func (EnsureTable) isHubMsg()     {}
func (GetTable) isHubMsg()        {}
func (RemoveTable) isHubMsg()     {}
func (UpdateAllConfig) isHubMsg() {}
func (ShutdownHub) isHubMsg()     {}

type Result struct {
	Table *table.Table
	Err   error
}

type Hub struct {
	inbox    chan HubMsg
	tables   map[string]*table.Table
	maxLive  int
	engine   narrator.Engine
	hooks    table.Hooks
	tableCfg *table.Config
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

type Options struct {
	MaxActiveSessions int
	Engine            narrator.Engine
	Hooks             table.Hooks
	TableConfig       *table.Config
	Log               *zap.Logger
}

func NewHub(parent context.Context, opts Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		tables:   make(map[string]*table.Table),
		maxLive:  opts.MaxActiveSessions,
		engine:   opts.Engine,
		hooks:    opts.Hooks,
		tableCfg: opts.TableConfig,
		log:      opts.Log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureTable:
				if t := h.tables[msg.ID]; t != nil {
					msg.Reply <- Result{Table: t}
					break
				}
				if active := h.activeIDs(); h.maxLive > 0 && len(active) >= h.maxLive {
					msg.Reply <- Result{Err: &session.CapacityError{Limit: h.maxLive, Active: active}}
					break
				}
				t := table.New(h.ctx, msg.ID, h.engine, h.hooks, h.tableCfg, h.log)
				h.tables[msg.ID] = t
				h.log.Info("session created", zap.String("session", msg.ID))
				msg.Reply <- Result{Table: t}

			case GetTable:
				msg.Reply <- h.tables[msg.ID] // may be nil

			case RemoveTable:
				if t := h.tables[msg.ID]; t != nil {
					t.Inbox() <- table.Shutdown{}
					delete(h.tables, msg.ID)
				}

			case UpdateAllConfig:
				if err := msg.Patch.Validate(); err != nil {
					msg.Reply <- err
					break
				}
				for _, t := range h.tables {
					reply := make(chan error, 1)
					t.Inbox() <- table.UpdateConfig{Patch: msg.Patch, Reply: reply}
					if err := <-reply; err != nil && err != session.ErrSessionClosed {
						h.log.Warn("config update rejected", zap.String("session", t.ID()), zap.Error(err))
					}
				}
				msg.Reply <- nil

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

// activeIDs lists the sessions counted against the cap: at least one
// connected player and not closed. Closed or drained sessions stay in
// the map but cost nothing toward the cap.
func (h *Hub) activeIDs() []string {
	var out []string
	for id, t := range h.tables {
		if t.Active() {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (h *Hub) shutdown() {
	for id, t := range h.tables {
		t.Inbox() <- table.Shutdown{}
		delete(h.tables, id)
	}
	h.cancel()
}
