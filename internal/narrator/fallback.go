package narrator

import "github.com/fireside-games/fireside-backend/internal/session"

// Fail-forward content substituted when the engine errors. A stalled or
// erroring AI call must never block the table, so every call site has a
// neutral result to fall back on.

const FallbackTurnText = "The moment passes in a blur. Something shifts, but the details are hazy, and the story presses on."

const FallbackIntroText = "The party gathers as the next chapter begins. The storyteller clears their throat..."

const FallbackPlayerPrompt = "What do you do?"

const FallbackSummaryText = "The adventure ran its course, and the party parted ways with stories to tell."

// FallbackPitches keeps the pitch vote viable when option generation
// fails outright.
var FallbackPitches = []session.Pitch{
	{Title: "The Forgotten Vault", Description: "Rumors of a sealed vault beneath the old city draw the party into the dark."},
	{Title: "Storm Over Hollowmere", Description: "A coastal village pleads for help as an unnatural storm refuses to break."},
}

func FallbackTurn() TurnResult {
	return TurnResult{Text: FallbackTurnText}
}

func FallbackOpening(sceneNumber int) SceneOpening {
	return SceneOpening{
		IntroText:    FallbackIntroText,
		PlayerPrompt: FallbackPlayerPrompt,
	}
}
