package ai

import (
	"fmt"
	"strings"

	"github.com/wastelandrpg/wasteland/internal/game/conversation"
	"github.com/wastelandrpg/wasteland/internal/game/state"
)

// recentTurnLimit bounds how much dialogue history goes into each prompt.
const recentTurnLimit = 10

const systemPreamble = `You are the dungeon master of a post-apocalyptic ` +
	`wasteland role-playing game. Narrate vividly but briefly. Stay ` +
	`consistent with the world facts below. Never decide dice outcomes; ` +
	`combat results are provided to you.`

// BuildSystem renders the system context: the preamble plus the worldbook's
// deterministic context block.
func BuildSystem(g *state.GameState) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\n")
	b.WriteString(g.Worldbook.BuildContext())
	return b.String()
}

// BuildPrompt renders the per-turn prompt: the character sheet summary, the
// recent dialogue, and the player's new input.
func BuildPrompt(g *state.GameState, playerInput string) string {
	var b strings.Builder

	c := g.Character
	fmt.Fprintf(&b, "CHARACTER: %s, level %d, HP %d/%d, AP %d/%d, caps %d, at %s, day %d\n\n",
		c.Name, c.Level, c.HP, c.MaxHP, c.AP, c.MaxAP, c.Caps, g.Location, g.Day)

	for _, turn := range g.Conversation.Recent(recentTurnLimit) {
		switch turn.Role {
		case conversation.RolePlayer:
			fmt.Fprintf(&b, ">>> PLAYER: %s\n", turn.Message)
		case conversation.RoleDM:
			fmt.Fprintf(&b, ">>> DM: %s\n", turn.Message)
		}
	}

	fmt.Fprintf(&b, ">>> PLAYER: %s\n", playerInput)
	return b.String()
}
