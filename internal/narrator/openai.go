package narrator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/session"
)

// OpenAIConfig configures the chat-completions backend. BaseURL may
// point at any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type OpenAIEngine struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

func NewOpenAIEngine(cfg OpenAIConfig, log *zap.Logger) *OpenAIEngine {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIEngine{client: openai.NewClientWithConfig(clientCfg), model: model, log: log}
}

const systemPrompt = `You are the narrator of a cooperative tabletop adventure played by a small group.
Write vivid second-person prose, two to four sentences unless asked otherwise.
Always answer with a single JSON object matching the schema in the request and nothing else.`

// complete runs one chat completion and unmarshals the JSON reply into out.
func (e *OpenAIEngine) complete(ctx context.Context, user string, out any) error {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion: empty response")
	}
	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode narration reply: %w", err)
	}
	return nil
}

func formatTranscript(entries []session.TranscriptEntry) string {
	var b strings.Builder
	for _, e := range entries {
		if e.Actor != "" {
			fmt.Fprintf(&b, "%s: %s\n", e.Actor, e.Text)
		} else {
			fmt.Fprintf(&b, "[%s] %s\n", e.Kind, e.Text)
		}
	}
	return b.String()
}

func formatParty(players []PlayerDescription) string {
	var b strings.Builder
	for _, p := range players {
		name := p.CharacterName
		if name == "" {
			name = p.Name
		}
		fmt.Fprintf(&b, "- %s (played by %s)", name, p.Name)
		if p.Appearance != "" {
			fmt.Fprintf(&b, ", looks: %s", p.Appearance)
		}
		if p.Preference != "" {
			fmt.Fprintf(&b, ", wants: %s", p.Preference)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (e *OpenAIEngine) GeneratePitchOptions(ctx context.Context, players []PlayerDescription) ([]session.Pitch, error) {
	prompt := fmt.Sprintf(`The party:
%s
Propose 2 or 3 adventure pitches this party would enjoy.
Reply as {"pitches": [{"title": "...", "description": "..."}]} with one-sentence descriptions.`, formatParty(players))

	var reply struct {
		Pitches []session.Pitch `json:"pitches"`
	}
	if err := e.complete(ctx, prompt, &reply); err != nil {
		return nil, err
	}
	if len(reply.Pitches) < 2 {
		return nil, fmt.Errorf("pitch generation: want at least 2 pitches, got %d", len(reply.Pitches))
	}
	if len(reply.Pitches) > 3 {
		reply.Pitches = reply.Pitches[:3]
	}
	return reply.Pitches, nil
}

func (e *OpenAIEngine) GenerateSceneOpening(ctx context.Context, req SceneRequest) (SceneOpening, error) {
	prompt := fmt.Sprintf(`Adventure: %s. %s
Scene number: %d
Story so far: %s
The party:
%s
Recent transcript:
%s
Open the scene. Reply as {"intro_text": "...", "orientation_points": ["...", "..."], "player_prompt": "..."}
with 2 to 4 orientation points.`,
		req.Pitch.Title, req.Pitch.Description, req.SceneNumber,
		orDefault(req.PreviousSummary, "(the adventure is just beginning)"),
		formatParty(req.Party), formatTranscript(req.RecentTranscript))

	var reply struct {
		IntroText         string   `json:"intro_text"`
		OrientationPoints []string `json:"orientation_points"`
		PlayerPrompt      string   `json:"player_prompt"`
	}
	if err := e.complete(ctx, prompt, &reply); err != nil {
		return SceneOpening{}, err
	}
	if reply.IntroText == "" {
		return SceneOpening{}, fmt.Errorf("scene opening: empty intro")
	}
	return SceneOpening{
		IntroText:         reply.IntroText,
		OrientationPoints: reply.OrientationPoints,
		PlayerPrompt:      orDefault(reply.PlayerPrompt, FallbackPlayerPrompt),
	}, nil
}

func (e *OpenAIEngine) NarrateTurn(ctx context.Context, req TurnRequest) (TurnResult, error) {
	var cards string
	if req.CardNotes != "" {
		cards = "Outcome cards: " + req.CardNotes + "\n"
	}
	prompt := fmt.Sprintf(`Adventure: %s. %s
Scene %d, turn %d. Scene so far: %s
Rolling summary: %s
Recent transcript:
%s
%s%s acts: %q
Narrate the result. If this beat is a natural place to close the scene, set close_scene true
and include a one-paragraph scene_summary.
Reply as {"text": "...", "close_scene": false, "scene_summary": ""}.`,
		req.Pitch.Title, req.Pitch.Description, req.Scene.Number, req.TurnNumber,
		req.Scene.Intro, orDefault(req.RollingSummary, "(none yet)"),
		formatTranscript(req.RecentTranscript), cards, req.ActorName, req.ActionText)

	var reply struct {
		Text         string `json:"text"`
		CloseScene   bool   `json:"close_scene"`
		SceneSummary string `json:"scene_summary"`
	}
	if err := e.complete(ctx, prompt, &reply); err != nil {
		return TurnResult{}, err
	}
	if reply.Text == "" {
		return TurnResult{}, fmt.Errorf("turn narration: empty text")
	}
	return TurnResult{Text: reply.Text, CloseScene: reply.CloseScene, SceneSummary: reply.SceneSummary}, nil
}

func (e *OpenAIEngine) RefreshContinuity(ctx context.Context, transcript []session.TranscriptEntry) (Continuity, error) {
	prompt := fmt.Sprintf(`Transcript of a cooperative adventure:
%s
Produce an updated rolling summary (one paragraph) plus any continuity warnings
(contradictions, dropped threads). Reply as {"rolling_summary": "...", "warnings": []}.`,
		formatTranscript(transcript))

	var reply struct {
		RollingSummary string   `json:"rolling_summary"`
		Warnings       []string `json:"warnings"`
	}
	if err := e.complete(ctx, prompt, &reply); err != nil {
		return Continuity{}, err
	}
	return Continuity{RollingSummary: reply.RollingSummary, Warnings: reply.Warnings}, nil
}

func (e *OpenAIEngine) SummarizeSession(ctx context.Context, transcript []session.TranscriptEntry) (string, error) {
	prompt := fmt.Sprintf(`Transcript of a finished cooperative adventure:
%s
Write a short closing recap of the whole session, addressed to the players.
Reply as {"summary": "..."}.`, formatTranscript(transcript))

	var reply struct {
		Summary string `json:"summary"`
	}
	if err := e.complete(ctx, prompt, &reply); err != nil {
		return "", err
	}
	if reply.Summary == "" {
		return "", fmt.Errorf("session summary: empty text")
	}
	return reply.Summary, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
