// Package ai connects the game to its large-language-model dungeon master.
// The core never blocks on the network while holding game state; callers
// build a prompt from a snapshot, then send it here.
package ai

import "context"

// Client sends a prompt to the dungeon master and returns its narration.
type Client interface {
	// Respond sends the system context and player prompt and returns the
	// DM's reply text.
	Respond(ctx context.Context, system, prompt string) (string, error)
}
