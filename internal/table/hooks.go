package table

import (
	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/session"
)

// Hooks is the injected notification surface. The table calls these
// synchronously on its own goroutine after each observable change; the
// table itself knows nothing about transports.
type Hooks interface {
	SessionUpdated(id string)
	PhaseChanged(id string, phase session.Phase)
	TranscriptAppended(id string, entry session.TranscriptEntry)
	NarrationThinking(id string, active bool, label string)
	NarrationResult(id string, text string)
}

type NopHooks struct{}

func (NopHooks) SessionUpdated(string)                              {}
func (NopHooks) PhaseChanged(string, session.Phase)                 {}
func (NopHooks) TranscriptAppended(string, session.TranscriptEntry) {}
func (NopHooks) NarrationThinking(string, bool, string)             {}
func (NopHooks) NarrationResult(string, string)                     {}

// ZapHooks logs every notification; the default wiring in main.
type ZapHooks struct {
	Log *zap.Logger
}

func (h ZapHooks) SessionUpdated(id string) {
	h.Log.Debug("session updated", zap.String("session", id))
}

func (h ZapHooks) PhaseChanged(id string, phase session.Phase) {
	h.Log.Info("phase changed", zap.String("session", id), zap.String("phase", string(phase)))
}

func (h ZapHooks) TranscriptAppended(id string, entry session.TranscriptEntry) {
	h.Log.Debug("transcript append",
		zap.String("session", id),
		zap.String("kind", string(entry.Kind)),
		zap.String("actor", entry.Actor))
}

func (h ZapHooks) NarrationThinking(id string, active bool, label string) {
	h.Log.Debug("narration thinking",
		zap.String("session", id), zap.Bool("active", active), zap.String("label", label))
}

func (h ZapHooks) NarrationResult(id string, text string) {
	h.Log.Debug("narration result", zap.String("session", id), zap.Int("chars", len(text)))
}
