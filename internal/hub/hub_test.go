package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fireside-games/fireside-backend/internal/narrator"
	"github.com/fireside-games/fireside-backend/internal/session"
	"github.com/fireside-games/fireside-backend/internal/table"
)

type nopEngine struct{}

func (nopEngine) GeneratePitchOptions(context.Context, []narrator.PlayerDescription) ([]session.Pitch, error) {
	return narrator.FallbackPitches, nil
}
func (nopEngine) GenerateSceneOpening(_ context.Context, req narrator.SceneRequest) (narrator.SceneOpening, error) {
	return narrator.FallbackOpening(req.SceneNumber), nil
}
func (nopEngine) NarrateTurn(context.Context, narrator.TurnRequest) (narrator.TurnResult, error) {
	return narrator.FallbackTurn(), nil
}
func (nopEngine) RefreshContinuity(context.Context, []session.TranscriptEntry) (narrator.Continuity, error) {
	return narrator.Continuity{}, nil
}
func (nopEngine) SummarizeSession(context.Context, []session.TranscriptEntry) (string, error) {
	return narrator.FallbackSummaryText, nil
}

func newTestHub(t *testing.T, maxLive int) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(ctx, Options{
		MaxActiveSessions: maxLive,
		Engine:            nopEngine{},
		Hooks:             table.NopHooks{},
	})
	t.Cleanup(func() { h.Inbox() <- ShutdownHub{} })
	return h
}

func ensure(t *testing.T, h *Hub, id string) Result {
	t.Helper()
	reply := make(chan Result, 1)
	h.Inbox() <- EnsureTable{ID: id, Reply: reply}
	select {
	case res := <-reply:
		return res
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out ensuring table %s", id)
		return Result{}
	}
}

func joinPlayer(t *testing.T, tb *table.Table, clientID, playerID string) {
	t.Helper()
	reply := make(chan error, 1)
	tb.Inbox() <- table.Join{
		ClientID: clientID,
		PlayerID: playerID,
		Name:     playerID,
		Role:     session.RolePlayer,
		Outbox:   make(chan table.Snapshot, 64),
		Reply:    reply,
	}
	select {
	case err := <-reply:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out joining %s", playerID)
	}
}

func TestHub_Ensure_Get_SamePointer(t *testing.T) {
	h := newTestHub(t, 0)

	res := ensure(t, h, "AAAAAA")
	require.NoError(t, res.Err)
	require.NotNil(t, res.Table)

	reply := make(chan *table.Table, 1)
	h.Inbox() <- GetTable{ID: "AAAAAA", Reply: reply}
	require.Same(t, res.Table, <-reply)

	again := ensure(t, h, "AAAAAA")
	require.Same(t, res.Table, again.Table)
}

func TestHub_GetUnknownIsNil(t *testing.T) {
	h := newTestHub(t, 0)
	reply := make(chan *table.Table, 1)
	h.Inbox() <- GetTable{ID: "NOPE", Reply: reply}
	require.Nil(t, <-reply)
}

func TestHub_CapCountsOnlyActiveSessions(t *testing.T) {
	h := newTestHub(t, 1)

	// An empty session does not count against the cap.
	first := ensure(t, h, "AAAAAA")
	require.NoError(t, first.Err)
	second := ensure(t, h, "BBBBBB")
	require.NoError(t, second.Err)

	// A connected player makes AAAAAA active; the next new session hits
	// the cap and the error names the active one.
	joinPlayer(t, first.Table, "c1", "p1")
	res := ensure(t, h, "CCCCCC")
	require.Error(t, res.Err)
	var capErr *session.CapacityError
	require.ErrorAs(t, res.Err, &capErr)
	require.Equal(t, []string{"AAAAAA"}, capErr.Active)

	// Existing sessions are still reachable at the cap.
	again := ensure(t, h, "AAAAAA")
	require.NoError(t, again.Err)
	require.Same(t, first.Table, again.Table)
}

func TestHub_UpdateAllConfigFansOut(t *testing.T) {
	h := newTestHub(t, 0)
	res := ensure(t, h, "AAAAAA")
	require.NoError(t, res.Err)

	sec := 45
	reply := make(chan error, 1)
	h.Inbox() <- UpdateAllConfig{Patch: table.ConfigPatch{VoteTimeoutSec: &sec}, Reply: reply}
	require.NoError(t, <-reply)

	view := make(chan table.View, 1)
	res.Table.Inbox() <- table.GetState{Reply: view}
	require.Equal(t, 45*time.Second, (<-view).VoteTimeout)

	bad := 0
	h.Inbox() <- UpdateAllConfig{Patch: table.ConfigPatch{VoteTimeoutSec: &bad}, Reply: reply}
	require.ErrorIs(t, <-reply, session.ErrBadConfig)
}
