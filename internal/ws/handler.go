package ws

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/hub"
	"github.com/fireside-games/fireside-backend/internal/session"
	"github.com/fireside-games/fireside-backend/internal/table"
	"github.com/fireside-games/fireside-backend/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection, joins the session named in the query
// string, and bridges socket messages to the table's inbox. Rejected
// commands are answered on this client's socket only.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		playerID := r.URL.Query().Get("player")
		name := r.URL.Query().Get("name")
		role, roleOK := parseRole(r.URL.Query().Get("role"))
		if sessionID == "" || playerID == "" || name == "" || !roleOK {
			http.Error(w, "missing or invalid session/player/name/role", http.StatusBadRequest)
			return
		}

		reply := make(chan hub.Result, 1)
		h.Inbox() <- hub.EnsureTable{ID: sessionID, Reply: reply}
		res := <-reply
		if res.Err != nil {
			http.Error(w, res.Err.Error(), http.StatusServiceUnavailable)
			return
		}
		tb := res.Table

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan table.Snapshot, 8)
		clientID := randID(8)

		joinReply := make(chan error, 1)
		tb.Inbox() <- table.Join{
			ClientID: clientID,
			PlayerID: playerID,
			Name:     name,
			Role:     role,
			Outbox:   out,
			Reply:    joinReply,
		}
		if err := <-joinReply; err != nil {
			writeError(r.Context(), conn, err)
			return
		}
		defer func() { tb.Inbox() <- table.Leave{ClientID: clientID} }()

		// Writer: snapshots out until the table closes the outbox.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				state := snap.State
				if role != session.RoleScreen {
					state.Transcript = withoutDebug(state.Transcript)
				}
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &state}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader: decode, validate, dispatch, report rejections.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("socket read ended", zap.String("client", clientID), zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeErrorText(r.Context(), conn, "bad json")
				continue
			}

			msg, errReply, err := toCommand(cm, playerID)
			if err != nil {
				writeError(r.Context(), conn, err)
				continue
			}
			tb.Inbox() <- msg
			if errReply != nil {
				if err := <-errReply; err != nil {
					writeError(r.Context(), conn, err)
				}
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, err error) {
	writeErrorText(ctx, conn, err.Error())
}

func writeErrorText(ctx context.Context, conn *websocket.Conn, text string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: text})
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	_ = conn.Write(wctx, websocket.MessageText, payload)
	cancel()
}

// withoutDebug hides AI-internal transcript entries from non-screen
// viewers.
func withoutDebug(entries []session.TranscriptEntry) []session.TranscriptEntry {
	out := make([]session.TranscriptEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind != session.EntryDebug {
			out = append(out, e)
		}
	}
	return out
}

func parseRole(role string) (session.Role, bool) {
	switch role {
	case "player":
		return session.RolePlayer, true
	case "screen":
		return session.RoleScreen, true
	default:
		return "", false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	buf := make([]byte, length)
	_, _ = rand.Read(buf)
	for i := range b {
		b[i] = charset[int(buf[i])%len(charset)]
	}
	return string(b)
}
