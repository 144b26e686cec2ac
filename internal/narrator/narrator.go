// Package narrator defines the contract with the external narration
// engine. The coordinator treats every call as fallible: callers always
// recover with the fallback content rather than surfacing errors to the
// table.
package narrator

import (
	"context"

	"github.com/fireside-games/fireside-backend/internal/session"
)

// PlayerDescription summarizes one player's setup for prompt building.
type PlayerDescription struct {
	Name          string
	CharacterName string
	Appearance    string
	Preference    string
}

type SceneOpening struct {
	IntroText         string
	OrientationPoints []string // 2-4 bullets orienting the party
	PlayerPrompt      string
}

type TurnResult struct {
	Text         string
	CloseScene   bool
	SceneSummary string
}

type TurnRequest struct {
	Pitch            session.Pitch
	ActorName        string
	ActionText       string
	CardNotes        string
	TurnNumber       int
	Scene            session.Scene
	RecentTranscript []session.TranscriptEntry
	RollingSummary   string
}

type SceneRequest struct {
	Pitch            session.Pitch
	SceneNumber      int
	PreviousSummary  string
	Party            []PlayerDescription
	RecentTranscript []session.TranscriptEntry
}

type Continuity struct {
	RollingSummary string
	Warnings       []string
}

// Engine is the narration backend. Implementations may take arbitrarily
// long; the table bounds nothing here and relies on the engine's own
// timeout policy.
type Engine interface {
	GeneratePitchOptions(ctx context.Context, players []PlayerDescription) ([]session.Pitch, error)
	GenerateSceneOpening(ctx context.Context, req SceneRequest) (SceneOpening, error)
	NarrateTurn(ctx context.Context, req TurnRequest) (TurnResult, error)
	RefreshContinuity(ctx context.Context, transcript []session.TranscriptEntry) (Continuity, error)
	SummarizeSession(ctx context.Context, transcript []session.TranscriptEntry) (string, error)
}
